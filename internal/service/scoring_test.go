package service

import (
	"testing"

	"brainbox_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullVector(n, value int) []int {
	v := make([]int, n)
	for i := range v {
		v[i] = value
	}
	return v
}

func TestScoreDASS21AllZero(t *testing.T) {
	res, err := ScoreDASS21(fullVector(21, 0))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Depression.Score)
	assert.Equal(t, model.SeverityNormal, res.Depression.Severity)
	assert.Equal(t, 0, res.Anxiety.Score)
	assert.Equal(t, model.SeverityNormal, res.Anxiety.Severity)
	assert.Equal(t, 0, res.Stress.Score)
	assert.Equal(t, model.SeverityNormal, res.Stress.Severity)
}

func TestScoreDASS21AllMax(t *testing.T) {
	res, err := ScoreDASS21(fullVector(21, 3))
	require.NoError(t, err)

	// 每个分量表 7 题 * 3 分 * 2 = 42
	assert.Equal(t, 42, res.Depression.Score)
	assert.Equal(t, model.SeveritySevere, res.Depression.Severity)
	assert.Equal(t, 42, res.Anxiety.Score)
	assert.Equal(t, model.SeveritySevere, res.Anxiety.Severity)
	assert.Equal(t, 42, res.Stress.Score)
	assert.Equal(t, model.SeveritySevere, res.Stress.Severity)
}

func TestScoreDASS21SubscalePartition(t *testing.T) {
	// 只给抑郁分量表的题目计分，另外两个分量表必须为 0
	answers := make([]int, 21)
	for _, idx := range dassDepressionItems {
		answers[idx] = 2
	}

	res, err := ScoreDASS21(answers)
	require.NoError(t, err)

	assert.Equal(t, 28, res.Depression.Score)
	assert.Equal(t, 0, res.Anxiety.Score)
	assert.Equal(t, 0, res.Stress.Score)
}

func TestScoreDASS21OrderIndependentWithinSubscale(t *testing.T) {
	answers := make([]int, 21)
	values := []int{3, 0, 1, 2, 0, 3, 1}
	for i, idx := range dassDepressionItems {
		answers[idx] = values[i]
	}
	base, err := ScoreDASS21(answers)
	require.NoError(t, err)

	// 在抑郁题目内部轮转取值，分数不变
	rotated := make([]int, 21)
	copy(rotated, answers)
	for i, idx := range dassDepressionItems {
		rotated[idx] = values[(i+3)%len(values)]
	}
	perm, err := ScoreDASS21(rotated)
	require.NoError(t, err)
	assert.Equal(t, base.Depression.Score, perm.Depression.Score)

	// 改动抑郁题目集合之外的题目，对抑郁分数无影响
	outside := make([]int, 21)
	copy(outside, answers)
	for _, idx := range dassStressItems {
		outside[idx] = 3
	}
	other, err := ScoreDASS21(outside)
	require.NoError(t, err)
	assert.Equal(t, base.Depression.Score, other.Depression.Score)
	assert.NotEqual(t, base.Stress.Score, other.Stress.Score)
}

func TestScoreDASS21ShapeErrors(t *testing.T) {
	_, err := ScoreDASS21(fullVector(20, 0))
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, InstrumentDASS21, se.Instrument)

	bad := fullVector(21, 0)
	bad[5] = 4
	_, err = ScoreDASS21(bad)
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Reason, "out of range")

	bad[5] = -1
	_, err = ScoreDASS21(bad)
	require.ErrorAs(t, err, &se)
}

func TestDASS21SeverityBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		fn    func(int) model.Severity
		score int
		want  model.Severity
	}{
		{"depression 9 normal", dassDepressionSeverity, 9, model.SeverityNormal},
		{"depression 10 mild", dassDepressionSeverity, 10, model.SeverityMild},
		{"depression 13 mild", dassDepressionSeverity, 13, model.SeverityMild},
		{"depression 14 moderate", dassDepressionSeverity, 14, model.SeverityModerate},
		{"depression 20 moderate", dassDepressionSeverity, 20, model.SeverityModerate},
		{"depression 21 severe", dassDepressionSeverity, 21, model.SeveritySevere},
		{"anxiety 7 normal", dassAnxietySeverity, 7, model.SeverityNormal},
		{"anxiety 8 mild", dassAnxietySeverity, 8, model.SeverityMild},
		{"anxiety 9 mild", dassAnxietySeverity, 9, model.SeverityMild},
		{"anxiety 10 moderate", dassAnxietySeverity, 10, model.SeverityModerate},
		{"anxiety 14 moderate", dassAnxietySeverity, 14, model.SeverityModerate},
		{"anxiety 15 severe", dassAnxietySeverity, 15, model.SeveritySevere},
		{"stress 14 normal", dassStressSeverity, 14, model.SeverityNormal},
		{"stress 15 mild", dassStressSeverity, 15, model.SeverityMild},
		{"stress 18 mild", dassStressSeverity, 18, model.SeverityMild},
		{"stress 19 moderate", dassStressSeverity, 19, model.SeverityModerate},
		{"stress 25 moderate", dassStressSeverity, 25, model.SeverityModerate},
		{"stress 26 severe", dassStressSeverity, 26, model.SeveritySevere},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.fn(c.score))
		})
	}
}

func TestScoreGAD7(t *testing.T) {
	cases := []struct {
		name    string
		answers []int
		score   int
		want    model.Severity
	}{
		{"all zero", fullVector(7, 0), 0, model.SeverityNormal},
		{"boundary 4 normal", []int{1, 1, 1, 1, 0, 0, 0}, 4, model.SeverityNormal},
		{"boundary 5 mild", []int{1, 1, 1, 1, 1, 0, 0}, 5, model.SeverityMild},
		{"boundary 9 mild", []int{2, 2, 2, 2, 1, 0, 0}, 9, model.SeverityMild},
		{"boundary 10 moderate", []int{2, 2, 2, 2, 2, 0, 0}, 10, model.SeverityModerate},
		{"boundary 14 moderate", []int{2, 2, 2, 2, 2, 2, 2}, 14, model.SeverityModerate},
		{"boundary 15 severe", []int{3, 2, 2, 2, 2, 2, 2}, 15, model.SeveritySevere},
		{"all max", fullVector(7, 3), 21, model.SeveritySevere},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := ScoreGAD7(c.answers)
			require.NoError(t, err)
			assert.Equal(t, c.score, res.Score)
			assert.Equal(t, c.want, res.Severity)
		})
	}

	_, err := ScoreGAD7(fullVector(9, 0))
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, InstrumentGAD7, se.Instrument)
}

func TestScorePHQ9(t *testing.T) {
	cases := []struct {
		name    string
		answers []int
		score   int
		want    model.Severity
	}{
		{"all zero", fullVector(9, 0), 0, model.SeverityNormal},
		{"boundary 4 normal", []int{1, 1, 1, 1, 0, 0, 0, 0, 0}, 4, model.SeverityNormal},
		{"boundary 5 minimal", []int{1, 1, 1, 1, 1, 0, 0, 0, 0}, 5, model.SeverityMinimal},
		{"boundary 9 minimal", []int{1, 1, 1, 1, 1, 1, 1, 1, 1}, 9, model.SeverityMinimal},
		{"boundary 10 mild", []int{2, 1, 1, 1, 1, 1, 1, 1, 1}, 10, model.SeverityMild},
		{"boundary 14 mild", []int{2, 2, 2, 2, 2, 1, 1, 1, 1}, 14, model.SeverityMild},
		{"boundary 15 moderate", []int{2, 2, 2, 2, 2, 2, 1, 1, 1}, 15, model.SeverityModerate},
		{"boundary 19 moderate", []int{3, 3, 3, 3, 3, 2, 1, 1, 0}, 19, model.SeverityModerate},
		{"boundary 20 severe", []int{3, 3, 3, 3, 3, 3, 1, 1, 0}, 20, model.SeveritySevere},
		{"all max", fullVector(9, 3), 27, model.SeveritySevere},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := ScorePHQ9(c.answers)
			require.NoError(t, err)
			assert.Equal(t, c.score, res.Score)
			assert.Equal(t, c.want, res.Severity)
		})
	}
}

func TestAggregateRisk(t *testing.T) {
	n := model.SeverityNormal
	mi := model.SeverityMinimal
	mo := model.SeverityModerate
	sv := model.SeveritySevere

	cases := []struct {
		name       string
		severities []model.Severity
		want       model.RiskLevel
	}{
		{"all normal", []model.Severity{n, n, n, n, n}, model.RiskLow},
		{"minimal only", []model.Severity{n, n, n, n, mi}, model.RiskLow},
		{"one moderate", []model.Severity{mo, n, n, n, n}, model.RiskModerate},
		{"two moderate", []model.Severity{mo, mo, n, n, n}, model.RiskModerate},
		{"three moderate", []model.Severity{mo, mo, mo, n, n}, model.RiskHigh},
		{"one severe rest normal", []model.Severity{sv, n, n, n, n}, model.RiskHigh},
		{"one severe one moderate", []model.Severity{sv, mo, n, n, n}, model.RiskHigh},
		{"two severe", []model.Severity{sv, n, sv, n, n}, model.RiskSevere},
		{"two severe other pair", []model.Severity{n, n, n, sv, sv}, model.RiskSevere},
		{"all severe", []model.Severity{sv, sv, sv, sv, sv}, model.RiskSevere},
		{"minimal is not moderate", []model.Severity{mi, mi, mi, n, n}, model.RiskLow},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, AggregateRisk(c.severities))
		})
	}
}

// 完整场景：抑郁原始和 5 → 10 分 mild；GAD-7 总分 16 severe；
// PHQ-9 总分 4 低于 minimal 档；整体因一个 severe 判 high
func TestScoringScenario(t *testing.T) {
	dassAnswers := make([]int, 21)
	dassAnswers[dassDepressionItems[0]] = 3
	dassAnswers[dassDepressionItems[1]] = 2

	dass, err := ScoreDASS21(dassAnswers)
	require.NoError(t, err)
	assert.Equal(t, 10, dass.Depression.Score)
	assert.Equal(t, model.SeverityMild, dass.Depression.Severity)

	gad7, err := ScoreGAD7([]int{3, 3, 3, 3, 3, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, 16, gad7.Score)
	assert.Equal(t, model.SeveritySevere, gad7.Severity)

	phq9, err := ScorePHQ9([]int{1, 1, 1, 1, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 4, phq9.Score)
	assert.Equal(t, model.SeverityNormal, phq9.Severity)

	risk := AggregateRisk([]model.Severity{
		dass.Depression.Severity,
		dass.Anxiety.Severity,
		dass.Stress.Severity,
		gad7.Severity,
		phq9.Severity,
	})
	assert.Equal(t, model.RiskHigh, risk)
}
