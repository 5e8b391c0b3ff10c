package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/model"
	"brainbox_backend/internal/repository"
)

const chatHistoryWindow = 20

type ChatService struct {
	Repo *repository.ChatRepository
	cfg  config.AIConfig
}

func NewChatService(repo *repository.ChatRepository, cfg config.AIConfig) *ChatService {
	return &ChatService{Repo: repo, cfg: cfg}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
		Delta   AIChatMessage `json:"delta"` // 流式响应
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const systemPrompt = "你是一位温和的校园心理陪伴助手，倾听学生的情绪困扰，" +
	"用共情、不评判的方式回应。你不是医生，不做诊断、不开药方；" +
	"当学生表达自伤、自杀或伤害他人的想法时，必须第一时间建议联系学校心理咨询中心" +
	"或拨打心理援助热线，并给出具体的求助途径。回答保持简短、口语化。"

// 危机关键词，命中时跳过模型直接返回求助信息并标记消息
var crisisKeywords = []string{
	"自杀", "自残", "不想活", "轻生", "结束生命",
	"suicide", "kill myself", "self harm", "end my life",
}

const crisisReply = "听起来你现在非常难受，这很重要，请不要独自承受。" +
	"请立即联系学校心理咨询中心，或拨打 24 小时心理援助热线 400-161-9995。" +
	"如果有紧急危险，请拨打 110 或前往最近的医院急诊。我会一直在这里陪你。"

func detectCrisis(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// History 返回时间正序的最近对话
func (s *ChatService) History(userID uint) ([]model.ChatMessage, error) {
	msgs, err := s.Repo.ListRecent(userID, chatHistoryWindow*2)
	if err != nil {
		return nil, err
	}
	// ListRecent 为倒序，翻转成对话顺序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *ChatService) ClearHistory(userID uint) error {
	return s.Repo.ClearByUser(userID)
}

// ChatStream 发送一条消息并流式返回回复。用户消息先落库；
// 触发危机关键词时不调用模型，直接返回求助信息
func (s *ChatService) ChatStream(userID uint, prompt string) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	flagged := detectCrisis(prompt)
	userMsg := &model.ChatMessage{UserID: userID, Role: "user", Content: prompt, Flagged: flagged}
	if err := s.Repo.Create(userMsg); err != nil {
		close(out)
		errChan <- err
		close(errChan)
		return out, errChan
	}

	if flagged {
		go func() {
			defer close(out)
			defer close(errChan)
			out <- crisisReply
			_ = s.Repo.Create(&model.ChatMessage{
				UserID: userID, Role: "assistant", Content: crisisReply, Flagged: true,
			})
		}()
		return out, errChan
	}

	history, err := s.History(userID)
	if err != nil {
		close(out)
		errChan <- err
		close(errChan)
		return out, errChan
	}

	messages := []AIChatMessage{{Role: "system", Content: systemPrompt}}
	for _, h := range history {
		messages = append(messages, AIChatMessage{Role: h.Role, Content: h.Content})
	}

	reqBody := map[string]interface{}{
		"model":    s.cfg.Model,
		"messages": messages,
		"stream":   true,
	}
	jsonData, _ := json.Marshal(reqBody)

	go func() {
		defer close(out)
		defer close(errChan)

		req, err := http.NewRequest("POST", s.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			errChan <- err
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			errChan <- fmt.Errorf("AI service returned %d: %s", resp.StatusCode, string(body))
			return
		}

		var reply strings.Builder
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				break
			}

			var chunk chatCompletionResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				continue
			}
			if chunk.Error != nil {
				errChan <- fmt.Errorf("AI service error: %s", chunk.Error.Message)
				return
			}
			for _, choice := range chunk.Choices {
				if choice.Delta.Content != "" {
					reply.WriteString(choice.Delta.Content)
					out <- choice.Delta.Content
				}
			}
		}
		if err := scanner.Err(); err != nil {
			errChan <- err
			return
		}

		if reply.Len() > 0 {
			_ = s.Repo.Create(&model.ChatMessage{
				UserID: userID, Role: "assistant", Content: reply.String(),
			})
		}
	}()

	return out, errChan
}
