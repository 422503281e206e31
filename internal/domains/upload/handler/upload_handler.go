package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/upload/service"
	"bookcatalog-backend/internal/shared/response"
)

type Presigner interface {
	Presign(ctx context.Context, req service.PresignRequest) (*service.PresignedUpload, error)
}

type UploadHandler struct {
	service Presigner
}

func NewUploadHandler(s Presigner) *UploadHandler {
	return &UploadHandler{service: s}
}

// PresignedURL godoc
// GET /presignedUrl?name=&uploadType=cover|photo
// Frontend đọc thẳng { uploadUrl, fileUrl } nên không bọc envelope
func (h *UploadHandler) PresignedURL(c *gin.Context) {
	out, ok := h.presign(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, out)
}

// PresignedURLEnvelope godoc
// GET /api/v1/uploads/presigned-url, cùng logic nhưng trả {success, data}
func (h *UploadHandler) PresignedURLEnvelope(c *gin.Context) {
	out, ok := h.presign(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *UploadHandler) presign(c *gin.Context) (*service.PresignedUpload, bool) {
	out, err := h.service.Presign(c.Request.Context(), service.PresignRequest{
		Name:       c.Query("name"),
		UploadType: c.Query("uploadType"),
	})
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return out, true
}
