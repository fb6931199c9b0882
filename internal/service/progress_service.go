package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/model"
	"learnhub/backend/internal/repository"
)

// ── 学习进度模块业务错误 ──

var (
	ErrNotEnrolled           = errors.New("未被分配到该课程")
	ErrChapterNotFound       = errors.New("章节不存在")
	ErrSequenceOrderMismatch = errors.New("章节顺序与实际不符")
	ErrPrerequisiteNotMet    = errors.New("前置条件未满足：请先完成上一章节")
	ErrCourseNotCompleted    = errors.New("课程尚未全部完成")
)

// ProgressService 学习进度业务接口
//
// 规则：
//   - 章节必须按 sequence_order 依次完成，第 1 章无前置
//   - 完成记录只追加，重复完成视为成功
//   - 全部章节完成（且课程至少一章）方可领取证书
type ProgressService interface {
	// CompleteChapter 请求完成章节
	CompleteChapter(ctx context.Context, studentID string, req *dto.CompleteChapterRequest) (*dto.CompleteChapterResponse, error)
	// ComputeCourseProgress 统计课程完成度（纯读）
	ComputeCourseProgress(ctx context.Context, studentID, courseID string) (*dto.ProgressSummary, error)
	// CheckCertificateEligibility 未满足时返回 ErrCourseNotCompleted
	CheckCertificateEligibility(ctx context.Context, studentID, courseID string) error
	// GetCourseProgress 课程进度与每章状态
	GetCourseProgress(ctx context.Context, studentID, courseID string) (*dto.CourseProgressResponse, error)
	// ListMyProgress 学员所有已分配课程的进度
	ListMyProgress(ctx context.Context, studentID string) ([]dto.CourseProgressResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProgressService 创建 ProgressService 实例
func NewProgressService(repo *repository.Repository, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, logger: logger}
}

// ────────────────────── CompleteChapter ──────────────────────

func (s *progressService) CompleteChapter(ctx context.Context, studentID string, req *dto.CompleteChapterRequest) (*dto.CompleteChapterResponse, error) {
	// 1. 选课校验
	if err := s.ensureEnrolled(ctx, studentID, req.CourseID); err != nil {
		return nil, err
	}

	// 2. 章节以库中记录为准
	chapter, err := s.repo.Chapter.GetByID(ctx, req.ChapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		s.logger.Error("查询章节失败", zap.String("chapter_id", req.ChapterID), zap.Error(err))
		return nil, err
	}
	if chapter.CourseID != req.CourseID {
		return nil, ErrChapterNotFound
	}
	if req.SequenceOrder != nil && *req.SequenceOrder != chapter.SequenceOrder {
		return nil, ErrSequenceOrderMismatch
	}

	// 3. 前置章节校验
	if chapter.HasPrerequisite() {
		done, err := s.repo.Completion.ExistsBySequence(ctx, studentID, req.CourseID, chapter.SequenceOrder-1)
		if err != nil {
			s.logger.Error("查询前置章节完成记录失败",
				zap.String("student_id", studentID),
				zap.String("course_id", req.CourseID),
				zap.Int("sequence_order", chapter.SequenceOrder-1),
				zap.Error(err),
			)
			return nil, err
		}
		if !done {
			return nil, ErrPrerequisiteNotMet
		}
	}

	// 4. 写入完成记录（冲突即已完成）
	created, err := s.repo.Completion.Upsert(ctx, &model.ChapterCompletion{
		StudentID: studentID,
		CourseID:  req.CourseID,
		ChapterID: chapter.ChapterID,
	})
	if err != nil {
		s.logger.Error("写入章节完成记录失败",
			zap.String("student_id", studentID),
			zap.String("chapter_id", chapter.ChapterID),
			zap.Error(err),
		)
		return nil, err
	}

	progress, err := s.ComputeCourseProgress(ctx, studentID, req.CourseID)
	if err != nil {
		return nil, err
	}

	return &dto.CompleteChapterResponse{
		Message:          "章节已完成",
		ChapterID:        chapter.ChapterID,
		AlreadyCompleted: !created,
		Progress:         *progress,
	}, nil
}

// ────────────────────── ComputeCourseProgress ──────────────────────

func (s *progressService) ComputeCourseProgress(ctx context.Context, studentID, courseID string) (*dto.ProgressSummary, error) {
	p, err := s.loadProgress(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	return toProgressSummary(p), nil
}

// ────────────────────── CheckCertificateEligibility ──────────────────────

func (s *progressService) CheckCertificateEligibility(ctx context.Context, studentID, courseID string) error {
	p, err := s.loadProgress(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if !p.CertificateEligible() {
		return ErrCourseNotCompleted
	}
	return nil
}

// ────────────────────── GetCourseProgress ──────────────────────

func (s *progressService) GetCourseProgress(ctx context.Context, studentID, courseID string) (*dto.CourseProgressResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	if err := s.ensureEnrolled(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	chapters, err := s.repo.Chapter.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询章节列表失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	ids, err := s.repo.Completion.ListChapterIDs(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("查询完成记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	completed := make(map[string]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}

	states := model.ResolveChapterStates(chapters, completed)
	p := model.Progress{Total: int64(len(chapters))}
	items := make([]dto.ChapterProgressResponse, 0, len(chapters))
	for _, ch := range chapters {
		if completed[ch.ChapterID] {
			p.Completed++
		}
		items = append(items, dto.ChapterProgressResponse{
			ChapterID:     ch.ChapterID,
			Title:         ch.Title,
			SequenceOrder: ch.SequenceOrder,
			State:         string(states[ch.ChapterID]),
		})
	}

	return &dto.CourseProgressResponse{
		CourseID:    course.CourseID,
		CourseTitle: course.Title,
		Progress:    *toProgressSummary(p),
		Chapters:    items,
	}, nil
}

// ────────────────────── ListMyProgress ──────────────────────

func (s *progressService) ListMyProgress(ctx context.Context, studentID string) ([]dto.CourseProgressResponse, error) {
	courses, err := s.repo.Course.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询学员课程失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseProgressResponse, 0, len(courses))
	for _, c := range courses {
		p, err := s.loadProgress(ctx, studentID, c.CourseID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.CourseProgressResponse{
			CourseID:    c.CourseID,
			CourseTitle: c.Title,
			Progress:    *toProgressSummary(p),
		})
	}
	return result, nil
}

// ────────────────────── 内部方法 ──────────────────────

func (s *progressService) ensureEnrolled(ctx context.Context, studentID, courseID string) error {
	ok, err := s.repo.Assignment.Exists(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("查询选课记录失败",
			zap.String("student_id", studentID),
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return err
	}
	if !ok {
		return ErrNotEnrolled
	}
	return nil
}

func (s *progressService) loadProgress(ctx context.Context, studentID, courseID string) (model.Progress, error) {
	total, err := s.repo.Chapter.CountByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("统计章节数失败", zap.String("course_id", courseID), zap.Error(err))
		return model.Progress{}, err
	}

	completed, err := s.repo.Completion.CountByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("统计完成章节数失败",
			zap.String("student_id", studentID),
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return model.Progress{}, err
	}

	return model.Progress{Total: total, Completed: completed}, nil
}

func toProgressSummary(p model.Progress) *dto.ProgressSummary {
	return &dto.ProgressSummary{
		Total:      p.Total,
		Completed:  p.Completed,
		Percentage: p.Percentage(),
	}
}
