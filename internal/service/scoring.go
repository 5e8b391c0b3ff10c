package service

import (
	"fmt"

	"brainbox_backend/internal/model"
)

// 标准量表计分。所有公式只在这里出现一次，其他层一律调用，不得自行重算。

const (
	InstrumentDASS21 = "dass21"
	InstrumentGAD7   = "gad7"
	InstrumentPHQ9   = "phq9"

	dass21Items = 21
	gad7Items   = 7
	phq9Items   = 9
)

// DASS-21 三个分量表各自固定的题目下标（0 起）
var (
	dassDepressionItems = [7]int{2, 4, 9, 12, 15, 16, 20}
	dassAnxietyItems    = [7]int{1, 3, 6, 8, 14, 18, 19}
	dassStressItems     = [7]int{0, 5, 7, 10, 11, 13, 17}
)

// DASS21Result 三个分量表的计分结果
type DASS21Result struct {
	Depression model.SubscaleResult `json:"depression"`
	Anxiety    model.SubscaleResult `json:"anxiety"`
	Stress     model.SubscaleResult `json:"stress"`
}

func validateAnswers(instrument string, answers []int, want int) *ShapeError {
	if len(answers) != want {
		return &ShapeError{
			Instrument: instrument,
			Reason:     fmt.Sprintf("expected %d answers, got %d", want, len(answers)),
		}
	}
	for i, a := range answers {
		if a < 0 || a > 3 {
			return &ShapeError{
				Instrument: instrument,
				Reason:     fmt.Sprintf("answer %d out of range: %d (must be 0-3)", i, a),
			}
		}
	}
	return nil
}

func sumItems(answers []int, items [7]int) int {
	sum := 0
	for _, idx := range items {
		sum += answers[idx]
	}
	return sum
}

// ScoreDASS21 计算 DASS-21 三个分量表。每个分量表为所属 7 题之和乘 2（短表翻倍约定）
func ScoreDASS21(answers []int) (DASS21Result, error) {
	if err := validateAnswers(InstrumentDASS21, answers, dass21Items); err != nil {
		return DASS21Result{}, err
	}

	depression := sumItems(answers, dassDepressionItems) * 2
	anxiety := sumItems(answers, dassAnxietyItems) * 2
	stress := sumItems(answers, dassStressItems) * 2

	return DASS21Result{
		Depression: model.SubscaleResult{Score: depression, Severity: dassDepressionSeverity(depression)},
		Anxiety:    model.SubscaleResult{Score: anxiety, Severity: dassAnxietySeverity(anxiety)},
		Stress:     model.SubscaleResult{Score: stress, Severity: dassStressSeverity(stress)},
	}, nil
}

// ScoreGAD7 计算 GAD-7，总分为 7 题之和
func ScoreGAD7(answers []int) (model.SubscaleResult, error) {
	if err := validateAnswers(InstrumentGAD7, answers, gad7Items); err != nil {
		return model.SubscaleResult{}, err
	}

	score := 0
	for _, a := range answers {
		score += a
	}
	return model.SubscaleResult{Score: score, Severity: gad7Severity(score)}, nil
}

// ScorePHQ9 计算 PHQ-9，总分为 9 题之和
func ScorePHQ9(answers []int) (model.SubscaleResult, error) {
	if err := validateAnswers(InstrumentPHQ9, answers, phq9Items); err != nil {
		return model.SubscaleResult{}, err
	}

	score := 0
	for _, a := range answers {
		score += a
	}
	return model.SubscaleResult{Score: score, Severity: phq9Severity(score)}, nil
}

// 分级查表统一先查最高档，逐档下落，落到边界取高档

func dassDepressionSeverity(score int) model.Severity {
	switch {
	case score >= 21:
		return model.SeveritySevere
	case score >= 14:
		return model.SeverityModerate
	case score >= 10:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}

func dassAnxietySeverity(score int) model.Severity {
	switch {
	case score >= 15:
		return model.SeveritySevere
	case score >= 10:
		return model.SeverityModerate
	case score >= 8:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}

func dassStressSeverity(score int) model.Severity {
	switch {
	case score >= 26:
		return model.SeveritySevere
	case score >= 19:
		return model.SeverityModerate
	case score >= 15:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}

func gad7Severity(score int) model.Severity {
	switch {
	case score >= 15:
		return model.SeveritySevere
	case score >= 10:
		return model.SeverityModerate
	case score >= 5:
		return model.SeverityMild
	default:
		return model.SeverityNormal
	}
}

func phq9Severity(score int) model.Severity {
	switch {
	case score >= 20:
		return model.SeveritySevere
	case score >= 15:
		return model.SeverityModerate
	case score >= 10:
		return model.SeverityMild
	case score >= 5:
		return model.SeverityMinimal
	default:
		return model.SeverityNormal
	}
}

// AggregateRisk 五个分量表严重程度投票出整体风险。
// 规则偏保守：两个 severe 或一个 severe 加大面积 moderate 直接升档；
// minimal 既不算 moderate 也不算 severe。先判 severe 升档再判 moderate
func AggregateRisk(severities []model.Severity) model.RiskLevel {
	severeCount := 0
	moderateCount := 0
	for _, s := range severities {
		switch s {
		case model.SeveritySevere:
			severeCount++
		case model.SeverityModerate:
			moderateCount++
		}
	}

	switch {
	case severeCount >= 2:
		return model.RiskSevere
	case severeCount >= 1 || moderateCount >= 3:
		return model.RiskHigh
	case moderateCount >= 1:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}
