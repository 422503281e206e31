package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hibiken/asynq"
)

// DateLayout là format ngày duy nhất API chấp nhận và trả về
const DateLayout = "2006-01-02"

const (
	MinYear = 1
	MaxYear = 9999
)

// ParseDate parses YYYY-MM-DD (UTC)
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// ParseDatePtr: nil in, nil out
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// TrimPtr trims in place semantics without mutating the caller's string
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// YearRule validates an optional calendar year (int or *int)
var YearRule = validation.By(func(value interface{}) error {
	var year int
	switch v := value.(type) {
	case int:
		year = v
	case *int:
		if v == nil {
			return nil
		}
		year = *v
	default:
		return errors.New("must be an integer year")
	}
	if year < MinYear || year > MaxYear {
		return errors.New("must be between 1 and 9999")
	}
	return nil
})

// DateRule: chuỗi rỗng hoặc nil được bỏ qua, Required xử lý riêng
var DateRule = validation.Date(DateLayout).Error("must be a date in YYYY-MM-DD format")

// UnmarshalTask decodes a JSON task payload; a malformed payload is never retried
func UnmarshalTask(t *asynq.Task, v any) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		return fmt.Errorf("%s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
