package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"learnhub/backend/internal/model"
	"learnhub/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filters != nil && filters.Role != "" && u.Role != filters.Role {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })

	total := int64(len(all))
	if offset >= len(all) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses     map[string]*model.Course
	chapters    *mockChapterRepo
	assignments *mockAssignmentRepo
	seq         int
}

func newMockCourseRepo(chapters *mockChapterRepo, assignments *mockAssignmentRepo) *mockCourseRepo {
	return &mockCourseRepo{
		courses:     make(map[string]*model.Course),
		chapters:    chapters,
		assignments: assignments,
	}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetWithChapters(ctx context.Context, id string) (*model.Course, error) {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *c
	cp.Chapters, _ = m.chapters.ListByCourse(ctx, id)
	return &cp, nil
}

func (m *mockCourseRepo) ListByMentor(_ context.Context, mentorID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.MentorID == mentorID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result, nil
}

func (m *mockCourseRepo) ListByStudent(_ context.Context, studentID string) ([]model.Course, error) {
	var result []model.Course
	for _, a := range m.assignments.items {
		if a.StudentID != studentID {
			continue
		}
		if c, ok := m.courses[a.CourseID]; ok {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseID < result[j].CourseID })
	return result, nil
}

// ── Mock ChapterRepository ──

type mockChapterRepo struct {
	chapters map[string]*model.Chapter
	seq      int
}

func newMockChapterRepo() *mockChapterRepo {
	return &mockChapterRepo{chapters: make(map[string]*model.Chapter)}
}

func (m *mockChapterRepo) Create(_ context.Context, chapter *model.Chapter) error {
	for _, ch := range m.chapters {
		if ch.CourseID == chapter.CourseID && ch.SequenceOrder == chapter.SequenceOrder {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_chapters_course_sequence"}
		}
	}
	if chapter.ChapterID == "" {
		m.seq++
		chapter.ChapterID = fmt.Sprintf("chapter-%d", m.seq)
	}
	m.chapters[chapter.ChapterID] = chapter
	return nil
}

func (m *mockChapterRepo) GetByID(_ context.Context, id string) (*model.Chapter, error) {
	if ch, ok := m.chapters[id]; ok {
		return ch, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChapterRepo) ListByCourse(_ context.Context, courseID string) ([]model.Chapter, error) {
	var result []model.Chapter
	for _, ch := range m.chapters {
		if ch.CourseID == courseID {
			result = append(result, *ch)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SequenceOrder < result[j].SequenceOrder })
	return result, nil
}

func (m *mockChapterRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	list, _ := m.ListByCourse(ctx, courseID)
	return int64(len(list)), nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	items map[string]*model.CourseAssignment // key: student_id:course_id
	users *mockUserRepo
}

func newMockAssignmentRepo(users *mockUserRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{items: make(map[string]*model.CourseAssignment), users: users}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.CourseAssignment) (bool, error) {
	key := a.StudentID + ":" + a.CourseID
	if _, ok := m.items[key]; ok {
		return false, nil
	}
	m.items[key] = a
	return true, nil
}

func (m *mockAssignmentRepo) Exists(_ context.Context, studentID, courseID string) (bool, error) {
	_, ok := m.items[studentID+":"+courseID]
	return ok, nil
}

func (m *mockAssignmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseAssignment, error) {
	var result []model.CourseAssignment
	for _, a := range m.items {
		if a.CourseID != courseID {
			continue
		}
		cp := *a
		cp.Student = m.users.users[a.StudentID]
		result = append(result, cp)
	}
	return result, nil
}

// ── Mock CompletionRepository ──

type mockCompletionRepo struct {
	mu       sync.Mutex
	items    map[string]*model.ChapterCompletion // key: student_id:chapter_id
	chapters *mockChapterRepo
}

func newMockCompletionRepo(chapters *mockChapterRepo) *mockCompletionRepo {
	return &mockCompletionRepo{items: make(map[string]*model.ChapterCompletion), chapters: chapters}
}

func (m *mockCompletionRepo) ExistsBySequence(_ context.Context, studentID, courseID string, sequenceOrder int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.items {
		if c.StudentID != studentID || c.CourseID != courseID {
			continue
		}
		if ch, ok := m.chapters.chapters[c.ChapterID]; ok && ch.SequenceOrder == sequenceOrder {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCompletionRepo) Upsert(_ context.Context, c *model.ChapterCompletion) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := c.StudentID + ":" + c.ChapterID
	if _, ok := m.items[key]; ok {
		return false, nil
	}
	m.items[key] = c
	return true, nil
}

func (m *mockCompletionRepo) CountByStudentCourse(_ context.Context, studentID, courseID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.items {
		if c.StudentID == studentID && c.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *mockCompletionRepo) ListChapterIDs(_ context.Context, studentID, courseID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, c := range m.items {
		if c.StudentID == studentID && c.CourseID == courseID {
			ids = append(ids, c.ChapterID)
		}
	}
	return ids, nil
}

func (m *mockCompletionRepo) CountByCourseGroupedByStudent(_ context.Context, courseID string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]int64)
	for _, c := range m.items {
		if c.CourseID == courseID {
			result[c.StudentID]++
		}
	}
	return result, nil
}

// ── Mock CertificateRepository ──

type mockCertificateRepo struct {
	items   map[string]*model.Certificate // key: student_id:course_id
	users   *mockUserRepo
	courses *mockCourseRepo
}

func newMockCertificateRepo(users *mockUserRepo, courses *mockCourseRepo) *mockCertificateRepo {
	return &mockCertificateRepo{items: make(map[string]*model.Certificate), users: users, courses: courses}
}

func (m *mockCertificateRepo) GetByStudentCourse(_ context.Context, studentID, courseID string) (*model.Certificate, error) {
	c, ok := m.items[studentID+":"+courseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.Student = m.users.users[studentID]
	cp.Course = m.courses.courses[courseID]
	return &cp, nil
}

func (m *mockCertificateRepo) Create(_ context.Context, cert *model.Certificate) (bool, error) {
	key := cert.StudentID + ":" + cert.CourseID
	if _, ok := m.items[key]; ok {
		return false, nil
	}
	m.items[key] = cert
	return true, nil
}

func (m *mockCertificateRepo) ListByCourse(_ context.Context, courseID string) ([]model.Certificate, error) {
	var result []model.Certificate
	for _, c := range m.items {
		if c.CourseID == courseID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── 测试夹具 ──

type mockRepos struct {
	users        *mockUserRepo
	courses      *mockCourseRepo
	chapters     *mockChapterRepo
	assignments  *mockAssignmentRepo
	completions  *mockCompletionRepo
	certificates *mockCertificateRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	users := newMockUserRepo()
	chapters := newMockChapterRepo()
	assignments := newMockAssignmentRepo(users)
	courses := newMockCourseRepo(chapters, assignments)
	m := &mockRepos{
		users:        users,
		courses:      courses,
		chapters:     chapters,
		assignments:  assignments,
		completions:  newMockCompletionRepo(chapters),
		certificates: newMockCertificateRepo(users, courses),
	}
	repo := &repository.Repository{
		User:        m.users,
		Course:      m.courses,
		Chapter:     m.chapters,
		Assignment:  m.assignments,
		Completion:  m.completions,
		Certificate: m.certificates,
	}
	return repo, m
}

func (m *mockRepos) addUser(id, email string, role model.Role, approved bool) *model.User {
	u := &model.User{UserID: id, Email: email, FullName: "用户 " + id, Role: role, IsApproved: approved}
	m.users.users[id] = u
	return u
}

// addCourse 创建课程及 n 个章节（chapter 顺序 1..n）
func (m *mockRepos) addCourse(id, mentorID string, n int) []*model.Chapter {
	m.courses.courses[id] = &model.Course{CourseID: id, Title: "课程 " + id, MentorID: mentorID}
	chapters := make([]*model.Chapter, 0, n)
	for i := 1; i <= n; i++ {
		ch := &model.Chapter{
			ChapterID:     fmt.Sprintf("%s-ch%d", id, i),
			CourseID:      id,
			Title:         fmt.Sprintf("第 %d 章", i),
			SequenceOrder: i,
		}
		m.chapters.chapters[ch.ChapterID] = ch
		chapters = append(chapters, ch)
	}
	return chapters
}

func (m *mockRepos) enroll(studentID, courseID string) {
	m.assignments.items[studentID+":"+courseID] = &model.CourseAssignment{StudentID: studentID, CourseID: courseID}
}

func (m *mockRepos) complete(studentID string, ch *model.Chapter) {
	m.completions.items[studentID+":"+ch.ChapterID] = &model.ChapterCompletion{
		StudentID: studentID,
		CourseID:  ch.CourseID,
		ChapterID: ch.ChapterID,
	}
}
