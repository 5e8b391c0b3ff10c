package service

import (
	"brainbox_backend/internal/model"
)

// ScoreSet 一次评估的五个分量表结果
type ScoreSet struct {
	Depression model.SubscaleResult `json:"depression"`
	Anxiety    model.SubscaleResult `json:"anxiety"`
	Stress     model.SubscaleResult `json:"stress"`
	Gad7       model.SubscaleResult `json:"gad7"`
	Phq9       model.SubscaleResult `json:"phq9"`
}

// Severities 固定顺序：depression, anxiety, stress, gad7, phq9
func (s ScoreSet) Severities() []model.Severity {
	return []model.Severity{
		s.Depression.Severity,
		s.Anxiety.Severity,
		s.Stress.Severity,
		s.Gad7.Severity,
		s.Phq9.Severity,
	}
}

// HasSevere 任一分量表达到 severe
func (s ScoreSet) HasSevere() bool {
	for _, sev := range s.Severities() {
		if sev == model.SeveritySevere {
			return true
		}
	}
	return false
}

func escalate(severe bool) model.Priority {
	if severe {
		return model.PriorityHigh
	}
	return model.PriorityMedium
}

// BuildRecommendations 根据量表结果、体征和生活方式生成有序建议列表。
// 每条规则独立判断，命中即追加，不去重不互斥；
// 最后若任一分量表为 severe，把紧急求助建议插到队首（顺序约定：下游渲染默认
// 第 0 条是最紧急项）
func BuildRecommendations(scores ScoreSet, vitals model.VitalsRecord, lifestyle model.LifestyleRecord) []model.Recommendation {
	recs := buildConditional(scores, vitals, lifestyle)
	return prependEmergency(recs, scores)
}

func buildConditional(scores ScoreSet, vitals model.VitalsRecord, lifestyle model.LifestyleRecord) []model.Recommendation {
	var recs []model.Recommendation

	if scores.Depression.Severity != model.SeverityNormal {
		recs = append(recs, model.Recommendation{
			Category:    "depression",
			Title:       "关注抑郁情绪",
			Description: "抑郁分量表结果偏高，建议保持规律作息、与信任的人多交流，并考虑预约校园心理咨询。",
			Priority:    escalate(scores.Depression.Severity == model.SeveritySevere),
		})
	}

	if scores.Anxiety.Severity != model.SeverityNormal || scores.Gad7.Severity != model.SeverityNormal {
		severe := scores.Anxiety.Severity == model.SeveritySevere || scores.Gad7.Severity == model.SeveritySevere
		recs = append(recs, model.Recommendation{
			Category:    "anxiety",
			Title:       "练习焦虑管理",
			Description: "焦虑相关量表结果偏高，可尝试腹式呼吸、正念冥想等放松训练，每天 10-15 分钟。",
			Priority:    escalate(severe),
		})
	}

	if scores.Stress.Severity != model.SeverityNormal {
		recs = append(recs, model.Recommendation{
			Category:    "stress",
			Title:       "调整压力水平",
			Description: "压力分量表结果偏高，建议合理拆分学习任务、安排课间休息，避免长时间连续用脑。",
			Priority:    escalate(scores.Stress.Severity == model.SeveritySevere),
		})
	}

	if vitals.SleepHours < 7 || vitals.SleepHours > 9 {
		recs = append(recs, model.Recommendation{
			Category:    "sleep",
			Title:       "改善睡眠习惯",
			Description: "睡眠时长不在 7-9 小时的建议区间内，尽量固定入睡时间，睡前减少屏幕使用。",
			Priority:    model.PriorityMedium,
		})
	}

	switch lifestyle.ExerciseFrequency {
	case "never", "rarely", "":
		recs = append(recs, model.Recommendation{
			Category:    "exercise",
			Title:       "增加运动量",
			Description: "运动频率偏低，每周进行 3 次以上 30 分钟的中等强度运动有助于改善情绪。",
			Priority:    model.PriorityMedium,
		})
	}

	if vitals.Systolic > 140 || vitals.Diastolic > 90 {
		recs = append(recs, model.Recommendation{
			Category:    "blood-pressure",
			Title:       "血压偏高需复测",
			Description: "本次血压读数超出正常范围，建议近期复测，持续偏高请到校医院就诊。",
			Priority:    model.PriorityHigh,
		})
	}

	if lifestyle.SmokingStatus != "" && lifestyle.SmokingStatus != "never" {
		recs = append(recs, model.Recommendation{
			Category:    "smoking",
			Title:       "减少或戒除吸烟",
			Description: "吸烟会加重焦虑和睡眠问题，建议制定戒烟计划，必要时寻求专业戒烟支持。",
			Priority:    model.PriorityHigh,
		})
	}

	if lifestyle.ScreenTimeHours != nil && *lifestyle.ScreenTimeHours > 8 {
		recs = append(recs, model.Recommendation{
			Category:    "screen-time",
			Title:       "控制屏幕时间",
			Description: "每日屏幕使用超过 8 小时，建议定时远眺休息，睡前一小时远离电子设备。",
			Priority:    model.PriorityLow,
		})
	}

	return recs
}

// prependEmergency 紧急求助建议必须位于第 0 位
func prependEmergency(recs []model.Recommendation, scores ScoreSet) []model.Recommendation {
	if !scores.HasSevere() {
		return recs
	}
	emergency := model.Recommendation{
		Category:    "emergency",
		Title:       "请尽快寻求专业帮助",
		Description: "量表结果显示存在重度症状，请尽快联系学校心理咨询中心或专业心理医生，紧急情况可拨打心理援助热线。",
		Priority:    model.PriorityHigh,
	}
	return append([]model.Recommendation{emergency}, recs...)
}
