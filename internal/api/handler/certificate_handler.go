package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"learnhub/backend/internal/service"
	"learnhub/backend/pkg/response"
)

// CertificateHandler 证书 HTTP 处理器
type CertificateHandler struct {
	certSvc service.CertificateService
}

// NewCertificateHandler 创建 CertificateHandler
func NewCertificateHandler(certSvc service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certSvc: certSvc}
}

// Get 领取（或查看已颁发的）课程证书
// GET /api/v1/certificates/:courseId
func (h *CertificateHandler) Get(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cert, err := h.certSvc.Issue(c.Request.Context(), studentID, c.Param("courseId"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotCompleted) {
			response.Forbidden(c, 15001, "课程尚未全部完成")
			return
		}
		handleProgressError(c, err)
		return
	}

	response.OK(c, cert)
}
