package alert

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP settings for the email notifier.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Email sends matched jobs by SMTP.
type Email struct {
	cfg EmailConfig
}

// NewEmail creates an email notifier.
func NewEmail(cfg EmailConfig) *Email {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Email{cfg: cfg}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Send(_ context.Context, n *Notification) error {
	if e.cfg.Host == "" || e.cfg.From == "" || e.cfg.To == "" {
		return fmt.Errorf("email config incomplete")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&body, "To: %s\r\n", e.cfg.To)
	fmt.Fprintf(&body, "Subject: %s (%d matches)\r\n", n.Subject, len(n.Jobs))
	body.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	for _, job := range n.Jobs {
		fmt.Fprintf(&body, "%s at %s (%s)\r\n", job.Title, job.Company, job.Location)
		fmt.Fprintf(&body, "  Score: %.0f%%  Skills: %s\r\n", job.MatchScore*100, strings.Join(job.MatchedSkills, ", "))
		fmt.Fprintf(&body, "  %s\r\n\r\n", job.URL)
	}

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	auth := smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	if err := smtp.SendMail(addr, auth, e.cfg.From, []string{e.cfg.To}, []byte(body.String())); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}
