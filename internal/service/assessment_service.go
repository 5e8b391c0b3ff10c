package service

import (
	"encoding/json"
	"fmt"

	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"
	"brainbox_backend/pkg/monitoring"
)

// 体征字段的生理合理范围
const (
	minSystolic  = 70
	maxSystolic  = 250
	minDiastolic = 40
	maxDiastolic = 150
	minHeartRate = 40
	maxHeartRate = 200
	minSleep     = 0.0
	maxSleep     = 24.0

	minTempC = 35.0
	maxTempC = 42.0
	minTempF = 95.0
	maxTempF = 107.6
)

type AssessmentService struct {
	Repo *repository.AssessmentRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{Repo: repo}
}

type SaveModuleRequest struct {
	Module string          `json:"module" binding:"required"`
	Data   json.RawMessage `json:"data" binding:"required"`
}

// SaveModule 整体覆盖式保存单个模块。负载内容在组装报告时才做语义校验，
// 这里只拦住非法模块名和空负载
func (s *AssessmentService) SaveModule(userID uint, req SaveModuleRequest) error {
	switch req.Module {
	case model.ModuleVitals, model.ModuleDASS21, model.ModuleGAD7, model.ModulePHQ9:
	default:
		ve := &ValidationError{}
		ve.add("module", fmt.Sprintf("unknown module %q, must be one of vitals, dass21, gad7, phq9", req.Module))
		return ve
	}
	if len(req.Data) == 0 {
		ve := &ValidationError{}
		ve.add("data", "module payload must not be empty")
		return ve
	}
	return s.Repo.UpsertModule(userID, req.Module, req.Data)
}

// GetProgress 返回已保存模块的子集，从未保存过时返回空视图
func (s *AssessmentService) GetProgress(userID uint) (*model.ModuleProgressView, error) {
	p, err := s.Repo.FindProgressByUser(userID)
	if err != nil {
		if isNotFound(err) {
			return &model.ModuleProgressView{}, nil
		}
		return nil, err
	}
	return &model.ModuleProgressView{
		Vitals: p.Vitals,
		Dass21: p.Dass21,
		Gad7:   p.Gad7,
		Phq9:   p.Phq9,
	}, nil
}

func (s *AssessmentService) ClearProgress(userID uint) error {
	return s.Repo.ClearProgress(userID)
}

type AnalyzeRequest struct {
	Vitals    model.VitalsRecord    `json:"vitals"`
	Lifestyle model.LifestyleRecord `json:"lifestyle"`
	Dass21    []int                 `json:"dass21"`
	Gad7      []int                 `json:"gad7"`
	Phq9      []int                 `json:"phq9"`
}

// Analyze 对完整原始负载执行计分、风险聚合、建议生成并落库。
// 校验不短路：所有字段级问题一次性收集返回，报告要么完整落库要么完全不落
func (s *AssessmentService) Analyze(userID uint, req AnalyzeRequest) (*model.AssessmentReport, error) {
	ve := &ValidationError{}
	validateVitals(req.Vitals, ve)
	validateVector(InstrumentDASS21, req.Dass21, dass21Items, ve)
	validateVector(InstrumentGAD7, req.Gad7, gad7Items, ve)
	validateVector(InstrumentPHQ9, req.Phq9, phq9Items, ve)
	if len(ve.Violations) > 0 {
		return nil, ve
	}

	dass, err := ScoreDASS21(req.Dass21)
	if err != nil {
		return nil, err
	}
	gad7, err := ScoreGAD7(req.Gad7)
	if err != nil {
		return nil, err
	}
	phq9, err := ScorePHQ9(req.Phq9)
	if err != nil {
		return nil, err
	}

	scores := ScoreSet{
		Depression: dass.Depression,
		Anxiety:    dass.Anxiety,
		Stress:     dass.Stress,
		Gad7:       gad7,
		Phq9:       phq9,
	}
	risk := AggregateRisk(scores.Severities())
	recommendations := BuildRecommendations(scores, req.Vitals, req.Lifestyle)

	vitalsJSON, err := json.Marshal(req.Vitals)
	if err != nil {
		return nil, err
	}
	lifestyleJSON, err := json.Marshal(req.Lifestyle)
	if err != nil {
		return nil, err
	}
	recsJSON, err := json.Marshal(recommendations)
	if err != nil {
		return nil, err
	}

	report := &model.AssessmentReport{
		UserID:          userID,
		Vitals:          vitalsJSON,
		Lifestyle:       lifestyleJSON,
		Depression:      scores.Depression,
		Anxiety:         scores.Anxiety,
		Stress:          scores.Stress,
		Gad7:            gad7,
		Phq9:            phq9,
		OverallRisk:     risk,
		Recommendations: recsJSON,
	}
	if err := s.Repo.CreateReport(report); err != nil {
		return nil, err
	}

	monitoring.AssessmentCounter.WithLabelValues(string(risk)).Inc()
	return report, nil
}

// SubmitFromProgress 用已保存的四个模块组装报告。
// 模块不齐返回 IncompleteAssessmentError；成功后清空进度（新报告取代旧进度）
func (s *AssessmentService) SubmitFromProgress(userID uint) (*model.AssessmentReport, error) {
	view, err := s.GetProgress(userID)
	if err != nil {
		return nil, err
	}
	if missing := view.MissingModules(); len(missing) > 0 {
		return nil, &IncompleteAssessmentError{Missing: missing}
	}

	req, err := decodeProgress(view)
	if err != nil {
		return nil, err
	}

	report, err := s.Analyze(userID, *req)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.ClearProgress(userID); err != nil {
		return nil, err
	}
	return report, nil
}

func decodeProgress(view *model.ModuleProgressView) (*AnalyzeRequest, error) {
	ve := &ValidationError{}
	var req AnalyzeRequest

	var vitalsPayload model.VitalsModulePayload
	if err := json.Unmarshal(view.Vitals, &vitalsPayload); err != nil {
		ve.add(model.ModuleVitals, "stored payload is not a valid vitals module")
	} else {
		req.Vitals = vitalsPayload.Vitals
		req.Lifestyle = vitalsPayload.Lifestyle
	}
	if err := json.Unmarshal(view.Dass21, &req.Dass21); err != nil {
		ve.add(model.ModuleDASS21, "stored payload is not a valid answer vector")
	}
	if err := json.Unmarshal(view.Gad7, &req.Gad7); err != nil {
		ve.add(model.ModuleGAD7, "stored payload is not a valid answer vector")
	}
	if err := json.Unmarshal(view.Phq9, &req.Phq9); err != nil {
		ve.add(model.ModulePHQ9, "stored payload is not a valid answer vector")
	}

	if len(ve.Violations) > 0 {
		return nil, ve
	}
	return &req, nil
}

func (s *AssessmentService) ListReports(userID uint, page, limit int) ([]model.AssessmentReport, int64, error) {
	return s.Repo.ListReportsByUser(userID, page, limit)
}

func (s *AssessmentService) GetReport(userID uint, id string) (*model.AssessmentReport, error) {
	return s.Repo.FindReportByIDAndUser(id, userID)
}

func validateVitals(v model.VitalsRecord, ve *ValidationError) {
	if v.Systolic < minSystolic || v.Systolic > maxSystolic {
		ve.add("vitals.systolic", fmt.Sprintf("must be between %d and %d mmHg", minSystolic, maxSystolic))
	}
	if v.Diastolic < minDiastolic || v.Diastolic > maxDiastolic {
		ve.add("vitals.diastolic", fmt.Sprintf("must be between %d and %d mmHg", minDiastolic, maxDiastolic))
	}
	if v.HeartRate < minHeartRate || v.HeartRate > maxHeartRate {
		ve.add("vitals.heartRate", fmt.Sprintf("must be between %d and %d bpm", minHeartRate, maxHeartRate))
	}
	if v.SleepHours < minSleep || v.SleepHours > maxSleep {
		ve.add("vitals.sleepHours", fmt.Sprintf("must be between %g and %g hours", minSleep, maxSleep))
	}

	// 体温单位不做量级猜测：没带单位直接报错，把两套边界都告诉调用方
	if v.Temperature != nil {
		switch v.TemperatureUnit {
		case "C":
			if *v.Temperature < minTempC || *v.Temperature > maxTempC {
				ve.add("vitals.temperature", fmt.Sprintf("must be between %g and %g °C", minTempC, maxTempC))
			}
		case "F":
			if *v.Temperature < minTempF || *v.Temperature > maxTempF {
				ve.add("vitals.temperature", fmt.Sprintf("must be between %g and %g °F", minTempF, maxTempF))
			}
		default:
			ve.add("vitals.temperatureUnit",
				fmt.Sprintf("unit is required: \"C\" (%g-%g) or \"F\" (%g-%g)", minTempC, maxTempC, minTempF, maxTempF))
		}
	}
}

func validateVector(instrument string, answers []int, want int, ve *ValidationError) {
	if err := validateAnswers(instrument, answers, want); err != nil {
		ve.add(instrument, err.Reason)
	}
}
