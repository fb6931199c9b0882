package service

import (
	"context"
	"errors"
	"fmt"
	"html"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/config"
	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/model"
	"learnhub/backend/internal/repository"
	"learnhub/backend/pkg/mail"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotMentor = errors.New("该用户不是导师")
)

// UserService 用户业务接口（管理员）
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	// ApproveMentor 审批导师账号，重复审批直接返回
	ApproveMentor(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mailer mail.Sender
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(cfg *config.Config, repo *repository.Repository, mailer mail.Sender, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, mailer: mailer, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{Role: model.Role(req.Role)}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── ApproveMentor ──────────────────────

func (s *userService) ApproveMentor(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if user.Role != model.RoleMentor {
		return nil, ErrUserNotMentor
	}
	if user.IsApproved {
		return toUserResponse(user), nil
	}

	user.IsApproved = true
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("审批导师失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("导师审批通过", zap.String("user_id", userID))
	s.notifyApproved(ctx, user)

	return toUserResponse(user), nil
}

// notifyApproved 发送审批通过邮件，失败只记日志
func (s *userService) notifyApproved(ctx context.Context, user *model.User) {
	if s.mailer == nil {
		return
	}

	body := fmt.Sprintf(
		"<p>%s，您好：</p><p>您的导师账号已通过审批，现在可以<a href=\"%s\">登录</a>并创建课程。</p>",
		html.EscapeString(user.FullName), s.cfg.Server.BaseURL,
	)
	if err := s.mailer.Send(ctx, user.Email, "导师账号审批通过", body); err != nil {
		s.logger.Warn("审批通知邮件发送失败", zap.String("user_id", user.UserID), zap.Error(err))
	}
}
