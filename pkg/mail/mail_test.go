package mail

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"learnhub/backend/config"
)

func TestNewSender_WithoutSMTP(t *testing.T) {
	s := NewSender(&config.MailConfig{}, zap.NewNop())
	if _, ok := s.(*logSender); !ok {
		t.Fatalf("未配置 SMTP 时应返回 logSender，实际=%T", s)
	}
	if err := s.Send(context.Background(), "a@example.com", "subject", "<p>body</p>"); err != nil {
		t.Errorf("logSender 不应返回错误: %v", err)
	}
}

func TestNewSender_WithSMTP(t *testing.T) {
	s := NewSender(&config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "noreply@example.com"}, zap.NewNop())
	if _, ok := s.(*smtpSender); !ok {
		t.Fatalf("配置 SMTP 时应返回 smtpSender，实际=%T", s)
	}
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	s := NewSender(&config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, "a@example.com", "subject", "body"); err == nil {
		t.Error("已取消的 context 应直接返回错误")
	}
}
