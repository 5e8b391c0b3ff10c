package model

import (
	"encoding/json"
	"time"
)

// Severity 量表严重程度分级
// DASS-21/GAD-7 使用 normal/mild/moderate/severe，PHQ-9 额外有 minimal 档
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityMinimal  Severity = "minimal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// RiskLevel 由五个分量表严重程度投票得出的整体风险档
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskSevere   RiskLevel = "severe"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// 评估模块名，四个阶段各自独立保存
const (
	ModuleVitals = "vitals"
	ModuleDASS21 = "dass21"
	ModuleGAD7   = "gad7"
	ModulePHQ9   = "phq9"
)

// swagger:model SubscaleResult
type SubscaleResult struct {
	Score    int      `json:"score"`
	Severity Severity `gorm:"size:20" json:"severity"`
}

// swagger:model Recommendation
type Recommendation struct {
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// VitalsRecord 体征记录。体温单位必须显式给出，不做量级猜测
// swagger:model VitalsRecord
type VitalsRecord struct {
	Systolic        int      `json:"systolic"`
	Diastolic       int      `json:"diastolic"`
	HeartRate       int      `json:"heartRate"`
	SleepHours      float64  `json:"sleepHours"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TemperatureUnit string   `json:"temperatureUnit,omitempty"` // "C" 或 "F"
}

// swagger:model LifestyleRecord
type LifestyleRecord struct {
	ExerciseFrequency string   `json:"exerciseFrequency"` // never/rarely/sometimes/often/daily
	SmokingStatus     string   `json:"smokingStatus"`     // never/former/current/occasional
	AlcoholUse        string   `json:"alcoholUse"`        // never/rarely/occasionally/regularly/daily
	ScreenTimeHours   *float64 `json:"screenTimeHours,omitempty"`
	ChronicConditions string   `json:"chronicConditions,omitempty"`
	Medications       string   `json:"medications,omitempty"`
}

// VitalsModulePayload vitals 模块保存的原始负载（体征 + 生活方式一并提交）
type VitalsModulePayload struct {
	Vitals    VitalsRecord    `json:"vitals"`
	Lifestyle LifestyleRecord `json:"lifestyle"`
}

// AssessmentProgress 每个用户一行，四个模块各占一个可空 JSON 列。
// 缺失的模块是类型层面的缺失（NULL 列），不是开放字典里丢失的键。
// 硬删除（无 DeletedAt），clear 后可重新建行
type AssessmentProgress struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint            `gorm:"uniqueIndex;not null" json:"userId"`
	Vitals    json.RawMessage `gorm:"type:json" json:"vitals,omitempty"`
	Dass21    json.RawMessage `gorm:"type:json" json:"dass21,omitempty"`
	Gad7      json.RawMessage `gorm:"type:json" json:"gad7,omitempty"`
	Phq9      json.RawMessage `gorm:"type:json" json:"phq9,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (AssessmentProgress) TableName() string {
	return "assessment_progress"
}

// ModuleProgressView 进度读取视图，缺失模块序列化时直接省略键
// swagger:model ModuleProgressView
type ModuleProgressView struct {
	Vitals json.RawMessage `json:"vitals,omitempty"`
	Dass21 json.RawMessage `json:"dass21,omitempty"`
	Gad7   json.RawMessage `json:"gad7,omitempty"`
	Phq9   json.RawMessage `json:"phq9,omitempty"`
}

// MissingModules 按固定顺序返回尚未保存的模块名
func (v *ModuleProgressView) MissingModules() []string {
	var missing []string
	if len(v.Vitals) == 0 {
		missing = append(missing, ModuleVitals)
	}
	if len(v.Dass21) == 0 {
		missing = append(missing, ModuleDASS21)
	}
	if len(v.Gad7) == 0 {
		missing = append(missing, ModuleGAD7)
	}
	if len(v.Phq9) == 0 {
		missing = append(missing, ModulePHQ9)
	}
	return missing
}

// AssessmentReport 评估报告，创建后不可变（只增不改，重测生成新报告）
// swagger:model AssessmentReport
type AssessmentReport struct {
	UUIDBase
	UserID          uint            `gorm:"index;not null" json:"userId"`
	Vitals          json.RawMessage `gorm:"type:json" json:"vitals"`
	Lifestyle       json.RawMessage `gorm:"type:json" json:"lifestyle"`
	Depression      SubscaleResult  `gorm:"embedded;embeddedPrefix:depression_" json:"depression"`
	Anxiety         SubscaleResult  `gorm:"embedded;embeddedPrefix:anxiety_" json:"anxiety"`
	Stress          SubscaleResult  `gorm:"embedded;embeddedPrefix:stress_" json:"stress"`
	Gad7            SubscaleResult  `gorm:"embedded;embeddedPrefix:gad7_" json:"gad7"`
	Phq9            SubscaleResult  `gorm:"embedded;embeddedPrefix:phq9_" json:"phq9"`
	OverallRisk     RiskLevel       `gorm:"size:20;not null" json:"overallRisk"`
	Recommendations json.RawMessage `gorm:"type:json" json:"recommendations"`
}

func (AssessmentReport) TableName() string {
	return "assessment_reports"
}
