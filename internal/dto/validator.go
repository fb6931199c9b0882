package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"learnhub/backend/internal/model"
)

// RegisterValidators 向 gin 的绑定校验器注册自定义规则
//   - role: 值必须是已知角色
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin 绑定校验器不是 validator/v10")
	}
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
}
