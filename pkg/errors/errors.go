package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL 唯一约束冲突错误码
const uniqueViolation = "23505"

// IsUniqueViolation 判断错误是否为唯一约束冲突
// constraint 为空时匹配任意唯一约束
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return constraint == "" && errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
