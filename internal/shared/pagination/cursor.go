package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"

	"bookcatalog-backend/internal/shared/apperror"
)

// EncodeCursor: cursor = base64(decimal id)
func EncodeCursor(id int64) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeCursor reverses EncodeCursor. Anything that does not decode to a positive
// integer id is malformed input, never "no constraint".
func DecodeCursor(cursor string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, apperror.Validation("invalid cursor", err)
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, apperror.Validation("invalid cursor", err)
	}
	if id <= 0 {
		return 0, apperror.Validation("invalid cursor", errors.New("cursor id must be positive"))
	}

	return id, nil
}
