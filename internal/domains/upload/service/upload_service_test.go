package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/shared/apperror"
)

type fakePresigner struct {
	key    string
	expiry time.Duration
	err    error
}

func (f *fakePresigner) PresignUpload(_ context.Context, key string, expiry time.Duration) (string, error) {
	f.key, f.expiry = key, expiry
	if f.err != nil {
		return "", f.err
	}
	return "http://minio:9000/bookcatalog/" + key + "?X-Amz-Signature=abc", nil
}

func (f *fakePresigner) PublicURL(key string) string {
	return "http://localhost:9000/bookcatalog/" + key
}

func newTestService(p *fakePresigner) *UploadService {
	s := NewUploadService(p, 15*time.Minute)
	s.newID = func() string { return "0b6f" }
	return s
}

func TestPresign(t *testing.T) {
	p := &fakePresigner{}
	out, err := newTestService(p).Presign(context.Background(), PresignRequest{Name: "Dune cover.png", UploadType: TypeCover})
	require.NoError(t, err)

	assert.Equal(t, "covers/0b6f-Dune-cover.png", p.key)
	assert.Equal(t, 15*time.Minute, p.expiry)
	assert.Equal(t, "http://localhost:9000/bookcatalog/covers/0b6f-Dune-cover.png", out.FileURL)
	assert.Contains(t, out.UploadURL, "X-Amz-Signature")
}

func TestPresignValidation(t *testing.T) {
	cases := map[string]PresignRequest{
		"empty name":     {Name: "  ", UploadType: TypeCover},
		"path traversal": {Name: "../etc/passwd", UploadType: TypeCover},
		"backslash":      {Name: `a\b.png`, UploadType: TypePhoto},
		"unknown type":   {Name: "a.png", UploadType: "avatar"},
		"missing type":   {Name: "a.png"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			p := &fakePresigner{}
			_, err := newTestService(p).Presign(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Empty(t, p.key)
		})
	}
}

func TestPresignStorageFailureIsInternal(t *testing.T) {
	_, err := newTestService(&fakePresigner{err: errors.New("minio down")}).
		Presign(context.Background(), PresignRequest{Name: "a.png", UploadType: TypePhoto})
	assert.True(t, apperror.IsReportable(err))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Le-Guin-portrait.jpg", SanitizeName("Le Guin portrait.jpg"))
	assert.Equal(t, "file", SanitizeName("???"))
	assert.Equal(t, "photos/id-x.png", ObjectKey(TypePhoto, "id", "x.png"))
}
