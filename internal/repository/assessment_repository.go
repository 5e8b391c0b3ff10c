package repository

import (
	"encoding/json"

	"brainbox_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// UpsertModule 以 user_id 为冲突键写入单个模块列。
// 同一模块重复提交为整列覆盖（last-write-wins），不同模块互不影响
func (r *AssessmentRepository) UpsertModule(userID uint, module string, payload json.RawMessage) error {
	progress := &model.AssessmentProgress{UserID: userID}

	switch module {
	case model.ModuleVitals:
		progress.Vitals = payload
	case model.ModuleDASS21:
		progress.Dass21 = payload
	case model.ModuleGAD7:
		progress.Gad7 = payload
	case model.ModulePHQ9:
		progress.Phq9 = payload
	default:
		return gorm.ErrInvalidField
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{module, "updated_at"}),
	}).Create(progress).Error
}

func (r *AssessmentRepository) FindProgressByUser(userID uint) (*model.AssessmentProgress, error) {
	var p model.AssessmentProgress
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ClearProgress 幂等：行不存在也不报错
func (r *AssessmentRepository) ClearProgress(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.AssessmentProgress{}).Error
}

func (r *AssessmentRepository) CreateReport(report *model.AssessmentReport) error {
	return r.DB.Create(report).Error
}

func (r *AssessmentRepository) FindReportByIDAndUser(id string, userID uint) (*model.AssessmentReport, error) {
	var report model.AssessmentReport
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *AssessmentRepository) ListReportsByUser(userID uint, page, limit int) ([]model.AssessmentReport, int64, error) {
	var reports []model.AssessmentReport
	var total int64

	query := r.DB.Model(&model.AssessmentReport{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&reports).Error
	return reports, total, err
}
