package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"learnhub/backend/config"
)

// Sender 邮件发送接口
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewSender 根据配置创建邮件发送器
// 未配置 SMTP 主机时返回只写日志的发送器
func NewSender(cfg *config.MailConfig, logger *zap.Logger) Sender {
	if cfg.SMTPHost == "" {
		logger.Info("未配置 SMTP，邮件仅记录日志")
		return &logSender{logger: logger}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func (s *smtpSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	s.logger.Info("邮件发送成功", zap.String("to", to), zap.String("subject", subject))
	return nil
}

type logSender struct {
	logger *zap.Logger
}

func (s *logSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Info("邮件（未发送）", zap.String("to", to), zap.String("subject", subject))
	return nil
}
