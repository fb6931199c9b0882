package model

import "math"

// ChapterState 章节对某学员的状态：locked → unlocked → completed
type ChapterState string

const (
	ChapterLocked    ChapterState = "locked"
	ChapterUnlocked  ChapterState = "unlocked"
	ChapterCompleted ChapterState = "completed"
)

// Progress 学员在某门课程上的完成情况
type Progress struct {
	Total     int64
	Completed int64
}

// Percentage round(100 * completed / total)，total 为 0 时返回 0
func (p Progress) Percentage() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
}

// CertificateEligible 全部章节完成且课程至少有一章
func (p Progress) CertificateEligible() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// ResolveChapterStates 按前置章节是否完成推导每章状态
// chapters 无需排序；completed 为已完成章节 ID 集合
func ResolveChapterStates(chapters []Chapter, completed map[string]bool) map[string]ChapterState {
	completedBySeq := make(map[int]bool, len(chapters))
	for _, ch := range chapters {
		if completed[ch.ChapterID] {
			completedBySeq[ch.SequenceOrder] = true
		}
	}

	states := make(map[string]ChapterState, len(chapters))
	for _, ch := range chapters {
		switch {
		case completed[ch.ChapterID]:
			states[ch.ChapterID] = ChapterCompleted
		case !ch.HasPrerequisite() || completedBySeq[ch.SequenceOrder-1]:
			states[ch.ChapterID] = ChapterUnlocked
		default:
			states[ch.ChapterID] = ChapterLocked
		}
	}
	return states
}
