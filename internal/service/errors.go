package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ShapeError 答题向量形状错误：长度不符或取值越界。
// 始终带上量表名返回给调用方，绝不静默截断或钳位
type ShapeError struct {
	Instrument string
	Reason     string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Instrument, e.Reason)
}

// FieldViolation 单个字段的校验失败信息
// swagger:model FieldViolation
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 汇总一次请求里所有字段级校验失败（不在第一个错误处短路）
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// IncompleteAssessmentError 四个模块未齐时提交报告，带缺失模块名便于前端续答
type IncompleteAssessmentError struct {
	Missing []string
}

func (e *IncompleteAssessmentError) Error() string {
	return "assessment incomplete, missing modules: " + strings.Join(e.Missing, ", ")
}
