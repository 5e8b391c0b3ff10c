package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"
	"brainbox_backend/pkg/logger"
	"brainbox_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type MoodService struct {
	Repo   *repository.MoodRepository
	cfg    config.ClassifierConfig
	client *http.Client
}

func NewMoodService(repo *repository.MoodRepository, cfg config.ClassifierConfig) *MoodService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MoodService{
		Repo:   repo,
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type LogMoodRequest struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}

type classifierResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// LogMood 记录一次心情打卡。带备注且配置了分类服务时尝试对备注做情绪分类，
// 分类失败只降级为用户手选心情，绝不阻塞写入
func (s *MoodService) LogMood(userID uint, req LogMoodRequest) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{
		UserID: userID,
		Mood:   req.Mood,
		Note:   req.Note,
		Source: "manual",
	}

	if req.Note != "" && s.cfg.URL != "" {
		if res, err := s.classify(req.Note); err != nil {
			logger.Log.Warn("mood classifier unavailable", zap.Error(err))
		} else if res.Label != "" {
			entry.Mood = res.Label
			entry.Source = "classifier"
			entry.Confidence = res.Confidence
		}
	}

	if err := s.Repo.Create(entry); err != nil {
		return nil, err
	}
	monitoring.MoodEntryCounter.WithLabelValues(entry.Mood).Inc()
	return entry, nil
}

func (s *MoodService) classify(text string) (*classifierResponse, error) {
	body, _ := json.Marshal(map[string]string{"text": text})
	resp, err := s.client.Post(s.cfg.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var res classifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *MoodService) History(userID uint, page, limit int) ([]model.MoodEntry, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}

type MoodStats struct {
	Since  time.Time        `json:"since"`
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

// WeeklyStats 最近 7 天各心情的打卡分布
func (s *MoodService) WeeklyStats(userID uint) (*MoodStats, error) {
	since := time.Now().AddDate(0, 0, -7)
	counts, err := s.Repo.CountByMoodSince(userID, since)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &MoodStats{Since: since, Counts: counts, Total: total}, nil
}
