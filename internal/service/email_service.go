package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"brainbox_backend/internal/config"
	"brainbox_backend/internal/model"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	cfg config.MailConfig
}

func NewEmailService(cfg config.MailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family:sans-serif;max-width:480px;margin:0 auto">
  <h2>Brainbox 密码重置</h2>
  <p>{{.Name}}，你好：</p>
  <p>你的验证码是 <b style="font-size:24px">{{.Code}}</b>，10 分钟内有效。</p>
  <p>如果这不是你本人的操作，请忽略此邮件。</p>
</div>`))

var reportTemplate = template.Must(template.New("report").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>心理健康自评报告</h2>
  <p>{{.Name}}，你好，这是你 {{.Date}} 完成的自评结果：</p>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><td>抑郁 (DASS-21)</td><td>{{.Report.Depression.Score}}</td><td>{{.Report.Depression.Severity}}</td></tr>
    <tr><td>焦虑 (DASS-21)</td><td>{{.Report.Anxiety.Score}}</td><td>{{.Report.Anxiety.Severity}}</td></tr>
    <tr><td>压力 (DASS-21)</td><td>{{.Report.Stress.Score}}</td><td>{{.Report.Stress.Severity}}</td></tr>
    <tr><td>GAD-7</td><td>{{.Report.Gad7.Score}}</td><td>{{.Report.Gad7.Severity}}</td></tr>
    <tr><td>PHQ-9</td><td>{{.Report.Phq9.Score}}</td><td>{{.Report.Phq9.Severity}}</td></tr>
  </table>
  <p>整体风险等级：<b>{{.Report.OverallRisk}}</b></p>
  {{if .Recommendations}}
  <h3>建议</h3>
  <ol>
    {{range .Recommendations}}<li><b>{{.Title}}</b>：{{.Description}}</li>{{end}}
  </ol>
  {{end}}
  <p style="color:#888;font-size:12px">本报告仅供自我了解，不构成医学诊断。</p>
</div>`))

func (s *EmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

func (s *EmailService) SendOTP(to, name, code string) error {
	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, map[string]string{"Name": name, "Code": code}); err != nil {
		return err
	}
	return s.send(to, "Brainbox 密码重置验证码", buf.String())
}

// SendReport 只负责渲染和投递已组装好的报告，不做任何重算
func (s *EmailService) SendReport(user *model.User, report *model.AssessmentReport) error {
	var recs []model.Recommendation
	if len(report.Recommendations) > 0 {
		if err := json.Unmarshal(report.Recommendations, &recs); err != nil {
			return fmt.Errorf("report %s has malformed recommendations: %w", report.ID, err)
		}
	}

	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, map[string]interface{}{
		"Name":            user.Name,
		"Date":            report.CreatedAt.Format("2006-01-02"),
		"Report":          report,
		"Recommendations": recs,
	})
	if err != nil {
		return err
	}
	return s.send(user.Email, "你的心理健康自评报告", buf.String())
}
