package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"learnhub/backend/config"
	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/model"
)

// ── Mock mail.Sender ──

type sentMail struct {
	to, subject, body string
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func setupTestUserService() (UserService, *mockRepos, *mockMailer) {
	cfg := &config.Config{Server: config.ServerConfig{BaseURL: "http://localhost:8080"}}
	repo, m := newMockRepos()
	mailer := &mockMailer{}
	return NewUserService(cfg, repo, mailer, zap.NewNop()), m, mailer
}

func TestUserService_List(t *testing.T) {
	svc, m, _ := setupTestUserService()
	m.addUser("u1", "a@test.com", model.RoleStudent, true)
	m.addUser("u2", "b@test.com", model.RoleMentor, false)
	m.addUser("u3", "c@test.com", model.RoleMentor, true)

	list, total, err := svc.List(context.Background(), &dto.UserListRequest{Role: "mentor"})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("期望 2 个导师，实际 total=%d len=%d", total, len(list))
	}

	page, total, err := svc.List(context.Background(), &dto.UserListRequest{
		PaginationRequest: dto.PaginationRequest{Page: 2, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if total != 3 || len(page) != 1 {
		t.Errorf("第 2 页应有 1 条，实际 total=%d len=%d", total, len(page))
	}
}

func TestUserService_ApproveMentor(t *testing.T) {
	svc, m, mailer := setupTestUserService()
	m.addUser("m1", "mentor@test.com", model.RoleMentor, false)

	resp, err := svc.ApproveMentor(context.Background(), "m1")
	if err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	if !resp.IsApproved || !m.users.users["m1"].IsApproved {
		t.Error("导师应已审批")
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "mentor@test.com" {
		t.Fatalf("应发送一封审批通知，实际: %+v", mailer.sent)
	}
	if !strings.Contains(mailer.sent[0].body, "http://localhost:8080") {
		t.Error("通知邮件应包含登录链接")
	}

	// 重复审批不再发邮件
	if _, err := svc.ApproveMentor(context.Background(), "m1"); err != nil {
		t.Fatalf("重复审批失败: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Errorf("重复审批不应再发邮件，实际发送 %d 封", len(mailer.sent))
	}
}

func TestUserService_ApproveMentor_MailFailureIgnored(t *testing.T) {
	svc, m, mailer := setupTestUserService()
	m.addUser("m1", "mentor@test.com", model.RoleMentor, false)
	mailer.err = errors.New("smtp down")

	if _, err := svc.ApproveMentor(context.Background(), "m1"); err != nil {
		t.Errorf("邮件失败不应影响审批，实际: %v", err)
	}
}

func TestUserService_ApproveMentor_Errors(t *testing.T) {
	svc, m, _ := setupTestUserService()
	m.addUser("s1", "s@test.com", model.RoleStudent, true)

	if _, err := svc.ApproveMentor(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
	if _, err := svc.ApproveMentor(context.Background(), "s1"); !errors.Is(err, ErrUserNotMentor) {
		t.Errorf("期望 ErrUserNotMentor，实际: %v", err)
	}
}
