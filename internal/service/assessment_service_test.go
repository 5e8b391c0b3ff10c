package service

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestAssessmentService(t *testing.T) *AssessmentService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.AssessmentProgress{}, &model.AssessmentReport{}))
	return NewAssessmentService(repository.NewAssessmentRepository(db))
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func validVitalsPayload(t *testing.T) json.RawMessage {
	return mustJSON(t, model.VitalsModulePayload{
		Vitals:    model.VitalsRecord{Systolic: 118, Diastolic: 76, HeartRate: 70, SleepHours: 8},
		Lifestyle: model.LifestyleRecord{ExerciseFrequency: "often", SmokingStatus: "never", AlcoholUse: "rarely"},
	})
}

func TestSaveModuleRejectsUnknownModule(t *testing.T) {
	svc := newTestAssessmentService(t)

	err := svc.SaveModule(1, SaveModuleRequest{Module: "sleep-diary", Data: json.RawMessage(`{}`)})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "module", ve.Violations[0].Field)

	err = svc.SaveModule(1, SaveModuleRequest{Module: model.ModuleVitals})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "data", ve.Violations[0].Field)
}

func TestSaveModuleUpsertIsIndependentPerModule(t *testing.T) {
	svc := newTestAssessmentService(t)
	userID := uint(7)

	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleVitals, Data: validVitalsPayload(t),
	}))
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleDASS21, Data: json.RawMessage(`[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]`),
	}))

	view, err := svc.GetProgress(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, view.Vitals)
	assert.NotEmpty(t, view.Dass21)
	assert.Empty(t, view.Gad7)
	assert.Empty(t, view.Phq9)
	assert.Equal(t, []string{model.ModuleGAD7, model.ModulePHQ9}, view.MissingModules())

	// 重复保存同一模块整体覆盖，且不影响其他模块
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleDASS21, Data: json.RawMessage(`[1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1]`),
	}))
	view, err = svc.GetProgress(userID)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1]`, string(view.Dass21))
	assert.NotEmpty(t, view.Vitals)
}

func TestSaveModuleIdempotent(t *testing.T) {
	svc := newTestAssessmentService(t)
	payload := json.RawMessage(`[2,2,2,2,2,2,2]`)

	require.NoError(t, svc.SaveModule(3, SaveModuleRequest{Module: model.ModuleGAD7, Data: payload}))
	first, err := svc.GetProgress(3)
	require.NoError(t, err)

	require.NoError(t, svc.SaveModule(3, SaveModuleRequest{Module: model.ModuleGAD7, Data: payload}))
	second, err := svc.GetProgress(3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetProgressEmptyForNewUser(t *testing.T) {
	svc := newTestAssessmentService(t)

	view, err := svc.GetProgress(42)
	require.NoError(t, err)
	assert.Equal(t, &model.ModuleProgressView{}, view)
	assert.Equal(t,
		[]string{model.ModuleVitals, model.ModuleDASS21, model.ModuleGAD7, model.ModulePHQ9},
		view.MissingModules())
}

func TestClearProgressIdempotentAndReusable(t *testing.T) {
	svc := newTestAssessmentService(t)
	userID := uint(5)

	// 空库 clear 不报错
	require.NoError(t, svc.ClearProgress(userID))

	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModulePHQ9, Data: json.RawMessage(`[0,0,0,0,0,0,0,0,0]`),
	}))
	require.NoError(t, svc.ClearProgress(userID))
	require.NoError(t, svc.ClearProgress(userID))

	view, err := svc.GetProgress(userID)
	require.NoError(t, err)
	assert.Empty(t, view.Phq9)

	// clear 之后可以重新建行（硬删除，唯一索引不产生冲突）
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModulePHQ9, Data: json.RawMessage(`[1,0,0,0,0,0,0,0,0]`),
	}))
	view, err = svc.GetProgress(userID)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,0,0,0,0,0,0,0,0]`, string(view.Phq9))
}

func TestSubmitFromProgressIncomplete(t *testing.T) {
	svc := newTestAssessmentService(t)
	userID := uint(9)

	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleVitals, Data: validVitalsPayload(t),
	}))
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleGAD7, Data: json.RawMessage(`[0,0,0,0,0,0,0]`),
	}))

	_, err := svc.SubmitFromProgress(userID)
	var ie *IncompleteAssessmentError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{model.ModuleDASS21, model.ModulePHQ9}, ie.Missing)

	// 失败的提交不得动已有进度
	view, err := svc.GetProgress(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, view.Vitals)
	assert.NotEmpty(t, view.Gad7)
}

func TestSubmitFromProgressFullFlow(t *testing.T) {
	svc := newTestAssessmentService(t)
	userID := uint(11)

	dass := make([]int, 21)
	dass[dassDepressionItems[0]] = 3
	dass[dassDepressionItems[1]] = 2

	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleVitals, Data: validVitalsPayload(t),
	}))
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleDASS21, Data: mustJSON(t, dass),
	}))
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModuleGAD7, Data: json.RawMessage(`[3,3,3,3,3,1,0]`),
	}))
	require.NoError(t, svc.SaveModule(userID, SaveModuleRequest{
		Module: model.ModulePHQ9, Data: json.RawMessage(`[1,1,1,1,0,0,0,0,0]`),
	}))

	report, err := svc.SubmitFromProgress(userID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, userID, report.UserID)
	assert.Equal(t, 10, report.Depression.Score)
	assert.Equal(t, model.SeverityMild, report.Depression.Severity)
	assert.Equal(t, 16, report.Gad7.Score)
	assert.Equal(t, model.SeveritySevere, report.Gad7.Severity)
	assert.Equal(t, 4, report.Phq9.Score)
	assert.Equal(t, model.RiskHigh, report.OverallRisk)

	var recs []model.Recommendation
	require.NoError(t, json.Unmarshal(report.Recommendations, &recs))
	require.NotEmpty(t, recs)
	assert.Equal(t, "emergency", recs[0].Category)

	// 提交成功后进度清空
	view, err := svc.GetProgress(userID)
	require.NoError(t, err)
	assert.Len(t, view.MissingModules(), 4)

	// 报告已落库且归属校验生效
	stored, err := svc.GetReport(userID, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.OverallRisk, stored.OverallRisk)

	_, err = svc.GetReport(userID+1, report.ID)
	assert.True(t, isNotFound(err))
}

func TestAnalyzeCollectsAllViolations(t *testing.T) {
	svc := newTestAssessmentService(t)
	temp := 38.5

	_, err := svc.Analyze(1, AnalyzeRequest{
		Vitals: model.VitalsRecord{
			Systolic:    300, // 超上限
			Diastolic:   30,  // 低于下限
			HeartRate:   70,
			SleepHours:  25,
			Temperature: &temp, // 缺单位
		},
		Dass21: make([]int, 20), // 长度不对
		Gad7:   []int{0, 0, 0, 0, 0, 0, 5},
		Phq9:   make([]int, 9),
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make([]string, 0, len(ve.Violations))
	for _, v := range ve.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{
		"vitals.systolic",
		"vitals.diastolic",
		"vitals.sleepHours",
		"vitals.temperatureUnit",
		InstrumentDASS21,
		InstrumentGAD7,
	}, fields)
}

func TestAnalyzeTemperatureUnits(t *testing.T) {
	svc := newTestAssessmentService(t)

	analyze := func(temp float64, unit string) error {
		_, err := svc.Analyze(1, AnalyzeRequest{
			Vitals: model.VitalsRecord{
				Systolic: 118, Diastolic: 76, HeartRate: 70, SleepHours: 8,
				Temperature: &temp, TemperatureUnit: unit,
			},
			Dass21: make([]int, 21),
			Gad7:   make([]int, 7),
			Phq9:   make([]int, 9),
		})
		return err
	}

	assert.NoError(t, analyze(36.6, "C"))
	assert.NoError(t, analyze(98.6, "F"))

	var ve *ValidationError
	require.ErrorAs(t, analyze(98.6, "C"), &ve)
	assert.Equal(t, "vitals.temperature", ve.Violations[0].Field)
	require.ErrorAs(t, analyze(36.6, "F"), &ve)
	assert.Equal(t, "vitals.temperature", ve.Violations[0].Field)
}

// 报告里存的分数必须与用同一原始向量独立重算的结果一致
func TestAnalyzeRoundTrip(t *testing.T) {
	svc := newTestAssessmentService(t)

	dass := []int{1, 2, 0, 3, 1, 0, 2, 1, 3, 0, 1, 2, 1, 0, 2, 1, 0, 3, 1, 2, 0}
	gad7 := []int{2, 1, 0, 3, 1, 2, 0}
	phq9 := []int{1, 0, 2, 1, 0, 3, 1, 0, 2}

	report, err := svc.Analyze(1, AnalyzeRequest{
		Vitals:    model.VitalsRecord{Systolic: 118, Diastolic: 76, HeartRate: 70, SleepHours: 8},
		Lifestyle: model.LifestyleRecord{ExerciseFrequency: "often", SmokingStatus: "never"},
		Dass21:    dass,
		Gad7:      gad7,
		Phq9:      phq9,
	})
	require.NoError(t, err)

	wantDass, err := ScoreDASS21(dass)
	require.NoError(t, err)
	wantGad7, err := ScoreGAD7(gad7)
	require.NoError(t, err)
	wantPhq9, err := ScorePHQ9(phq9)
	require.NoError(t, err)

	assert.Equal(t, wantDass.Depression, report.Depression)
	assert.Equal(t, wantDass.Anxiety, report.Anxiety)
	assert.Equal(t, wantDass.Stress, report.Stress)
	assert.Equal(t, wantGad7, report.Gad7)
	assert.Equal(t, wantPhq9, report.Phq9)
	assert.Equal(t, AggregateRisk([]model.Severity{
		wantDass.Depression.Severity,
		wantDass.Anxiety.Severity,
		wantDass.Stress.Severity,
		wantGad7.Severity,
		wantPhq9.Severity,
	}), report.OverallRisk)
}

func TestListReportsNewestFirstAndPaged(t *testing.T) {
	svc := newTestAssessmentService(t)
	userID := uint(2)

	req := AnalyzeRequest{
		Vitals: model.VitalsRecord{Systolic: 118, Diastolic: 76, HeartRate: 70, SleepHours: 8},
		Dass21: make([]int, 21),
		Gad7:   make([]int, 7),
		Phq9:   make([]int, 9),
	}
	var ids []string
	for i := 0; i < 3; i++ {
		report, err := svc.Analyze(userID, req)
		require.NoError(t, err)
		ids = append(ids, report.ID)
		time.Sleep(5 * time.Millisecond) // created_at 排序需要可区分的时间戳
	}
	// 其他用户的报告不可见
	_, err := svc.Analyze(userID+1, req)
	require.NoError(t, err)

	reports, total, err := svc.ListReports(userID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, reports, 2)
	assert.Equal(t, ids[2], reports[0].ID)
	assert.Equal(t, ids[1], reports[1].ID)

	reports, total, err = svc.ListReports(userID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, reports, 1)
	assert.Equal(t, ids[0], reports[0].ID)
}
