package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_chapters_course_sequence"}
	wrapped := fmt.Errorf("insert chapter: %w", pgErr)

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil", nil, "", false},
		{"任意约束", wrapped, "", true},
		{"指定约束匹配", wrapped, "uq_chapters_course_sequence", true},
		{"指定约束不匹配", wrapped, "uq_other", false},
		{"非唯一约束错误", &pgconn.PgError{Code: "23503"}, "", false},
		{"gorm 翻译后的错误", gorm.ErrDuplicatedKey, "", true},
		{"gorm 翻译后的错误无法区分约束", gorm.ErrDuplicatedKey, "uq_x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsUniqueViolation()=%v，期望 %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrap: %w", gorm.ErrRecordNotFound)) {
		t.Error("包装后的 ErrRecordNotFound 应被识别")
	}
	if IsNotFound(fmt.Errorf("other")) {
		t.Error("普通错误不应被识别为不存在")
	}
}
