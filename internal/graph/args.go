package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/pagination"
)

// parseID: ID scalar tới dưới dạng string (hoặc int nếu client gửi số)
func parseID(v interface{}, name string) (int64, error) {
	var raw string
	switch t := v.(type) {
	case string:
		raw = strings.TrimSpace(t)
	case int:
		raw = strconv.Itoa(t)
	case int64:
		raw = strconv.FormatInt(t, 10)
	default:
		return 0, apperror.Validation("invalid "+name, fmt.Errorf("unexpected type %T", v))
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("invalid "+name, err)
	}
	if id <= 0 {
		return 0, apperror.Validation("invalid "+name, errors.New("must be a positive integer"))
	}
	return id, nil
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// optString: key vắng mặt hoặc null đều là nil
func optString(args map[string]interface{}, key string) *string {
	s, ok := args[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optInt(args map[string]interface{}, key string) *int {
	n, ok := args[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func inputMap(args map[string]interface{}, key string) map[string]interface{} {
	m, _ := args[key].(map[string]interface{})
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func windowArgs(args map[string]interface{}) (pagination.Window, error) {
	return pagination.NewWindow(optInt(args, "first"), optString(args, "after"), optString(args, "before"))
}
