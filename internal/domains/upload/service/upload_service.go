package service

import (
	"context"
	"path"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared/apperror"
)

const MaxNameLength = 255

// Upload types và prefix tương ứng trong bucket
const (
	TypeCover = "cover"
	TypePhoto = "photo"
)

// Presigner là phần của MinIO storage dùng cho upload trực tiếp từ client
type Presigner interface {
	PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

type PresignRequest struct {
	Name       string
	UploadType string
}

func (r PresignRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			validation.RuneLength(1, MaxNameLength),
			validation.By(noPathSeparators),
		),
		validation.Field(&r.UploadType, validation.Required, validation.In(TypeCover, TypePhoto)),
	)
	if err != nil {
		return apperror.Validation("invalid upload request", err)
	}
	return nil
}

func noPathSeparators(value interface{}) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return validation.NewError("validation_path", "must be a plain file name")
	}
	return nil
}

type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

type UploadService struct {
	storage Presigner
	expiry  time.Duration
	newID   func() string
}

func NewUploadService(storage Presigner, expiry time.Duration) *UploadService {
	return &UploadService{storage: storage, expiry: expiry, newID: func() string { return uuid.NewString() }}
}

// Presign cấp URL PUT có hạn; client upload thẳng lên MinIO rồi dùng fileUrl khi tạo book/author
func (s *UploadService) Presign(ctx context.Context, req PresignRequest) (*PresignedUpload, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := ObjectKey(req.UploadType, s.newID(), req.Name)
	uploadURL, err := s.storage.PresignUpload(ctx, key, s.expiry)
	if err != nil {
		return nil, apperror.Internal("presign upload", err)
	}

	return &PresignedUpload{
		UploadURL: uploadURL,
		FileURL:   s.storage.PublicURL(key),
	}, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey: <type>s/<id>-<sanitized name>
func ObjectKey(uploadType, id, name string) string {
	return path.Join(uploadType+"s", id+"-"+SanitizeName(name))
}

// SanitizeName thay ký tự ngoài [A-Za-z0-9._-] bằng "-"
func SanitizeName(name string) string {
	s := unsafeChars.ReplaceAllString(strings.TrimSpace(name), "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		return "file"
	}
	return s
}
