package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/model"
	"learnhub/backend/internal/repository"
	pkgerrors "learnhub/backend/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound         = errors.New("课程不存在")
	ErrNotCourseOwner         = errors.New("只有课程创建者可以操作该课程")
	ErrDuplicateSequenceOrder = errors.New("该课程已存在相同顺序的章节")
	ErrStudentNotFound        = errors.New("学员不存在")
	ErrAssigneeNotStudent     = errors.New("只能为学员分配课程")
)

const chapterSequenceConstraint = "uq_chapters_course_sequence"

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, mentorID string) (*dto.CourseResponse, error)
	AddChapter(ctx context.Context, courseID string, req *dto.AddChapterRequest, mentorID string) (*dto.ChapterResponse, error)
	ListMine(ctx context.Context, mentorID string) ([]dto.CourseResponse, error)
	AssignStudent(ctx context.Context, courseID string, req *dto.AssignStudentRequest, mentorID string) (*dto.AssignmentResponse, error)
	ListAssigned(ctx context.Context, studentID string) ([]dto.CourseResponse, error)
	GetWithChapters(ctx context.Context, courseID string) (*dto.CourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, mentorID string) (*dto.CourseResponse, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		MentorID:    mentorID,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── AddChapter ──────────────────────

func (s *courseService) AddChapter(ctx context.Context, courseID string, req *dto.AddChapterRequest, mentorID string) (*dto.ChapterResponse, error) {
	if _, err := s.getOwnedCourse(ctx, courseID, mentorID); err != nil {
		return nil, err
	}

	chapter := &model.Chapter{
		CourseID:      courseID,
		Title:         req.Title,
		Content:       req.Content,
		SequenceOrder: req.SequenceOrder,
	}

	if err := s.repo.Chapter.Create(ctx, chapter); err != nil {
		if pkgerrors.IsUniqueViolation(err, chapterSequenceConstraint) {
			return nil, ErrDuplicateSequenceOrder
		}
		s.logger.Error("创建章节失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	resp := toChapterResponse(chapter)
	return &resp, nil
}

// ────────────────────── ListMine ──────────────────────

func (s *courseService) ListMine(ctx context.Context, mentorID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("查询导师课程失败", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

// ────────────────────── AssignStudent ──────────────────────

func (s *courseService) AssignStudent(ctx context.Context, courseID string, req *dto.AssignStudentRequest, mentorID string) (*dto.AssignmentResponse, error) {
	if _, err := s.getOwnedCourse(ctx, courseID, mentorID); err != nil {
		return nil, err
	}

	student, err := s.repo.User.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.String("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	if student.Role != model.RoleStudent {
		return nil, ErrAssigneeNotStudent
	}

	created, err := s.repo.Assignment.Create(ctx, &model.CourseAssignment{
		StudentID:  student.UserID,
		CourseID:   courseID,
		AssignedBy: mentorID,
		AssignedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("分配课程失败",
			zap.String("course_id", courseID),
			zap.String("student_id", student.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.AssignmentResponse{
		CourseID:        courseID,
		StudentID:       student.UserID,
		AlreadyAssigned: !created,
	}, nil
}

// ────────────────────── ListAssigned ──────────────────────

func (s *courseService) ListAssigned(ctx context.Context, studentID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学员课程失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

// ────────────────────── GetWithChapters ──────────────────────

func (s *courseService) GetWithChapters(ctx context.Context, courseID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetWithChapters(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	resp.Chapters = make([]dto.ChapterResponse, 0, len(course.Chapters))
	for i := range course.Chapters {
		resp.Chapters = append(resp.Chapters, toChapterResponse(&course.Chapters[i]))
	}
	return resp, nil
}

// ────────────────────── 内部方法 ──────────────────────

func (s *courseService) getOwnedCourse(ctx context.Context, courseID, mentorID string) (*model.Course, error) {
	return getOwnedCourse(ctx, s.repo, s.logger, courseID, mentorID)
}

// getOwnedCourse 查询课程并校验归属，课程服务与导出服务共用
func getOwnedCourse(ctx context.Context, repo *repository.Repository, logger *zap.Logger, courseID, mentorID string) (*model.Course, error) {
	course, err := repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	if !course.OwnedBy(mentorID) {
		return nil, ErrNotCourseOwner
	}
	return course, nil
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:          c.CourseID,
		Title:       c.Title,
		Description: c.Description,
		MentorID:    c.MentorID,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.Mentor != nil {
		resp.MentorName = c.Mentor.FullName
	}
	return resp
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result
}

func toChapterResponse(ch *model.Chapter) dto.ChapterResponse {
	return dto.ChapterResponse{
		ID:            ch.ChapterID,
		CourseID:      ch.CourseID,
		Title:         ch.Title,
		Content:       ch.Content,
		SequenceOrder: ch.SequenceOrder,
	}
}
