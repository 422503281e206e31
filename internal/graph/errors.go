package graph

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/infrastructure/errtrack"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/middleware"
)

// CodeGraphQLValidationFailed: query không parse hoặc không khớp schema
const CodeGraphQLValidationFailed = "GRAPHQL_VALIDATION_FAILED"

const internalMessage = "internal server error"

type ErrorCounter interface {
	CountGraphQLError(code string)
}

// ErrorFormatter là điểm duy nhất mọi lỗi GraphQL đi qua trước khi tới client:
// phân loại, log, report lỗi hạ tầng, che message nội bộ
type ErrorFormatter struct {
	reporter errtrack.Reporter
	counter  ErrorCounter
}

func NewErrorFormatter(reporter errtrack.Reporter, counter ErrorCounter) *ErrorFormatter {
	if reporter == nil {
		reporter = errtrack.Noop{}
	}
	return &ErrorFormatter{reporter: reporter, counter: counter}
}

func (f *ErrorFormatter) Format(ctx context.Context, errs []gqlerrors.FormattedError) []gqlerrors.FormattedError {
	if len(errs) == 0 {
		return errs
	}
	out := make([]gqlerrors.FormattedError, len(errs))
	for i, fe := range errs {
		out[i] = f.formatOne(ctx, fe)
	}
	return out
}

func (f *ErrorFormatter) formatOne(ctx context.Context, fe gqlerrors.FormattedError) gqlerrors.FormattedError {
	cause := originalError(fe)
	requestID := middleware.RequestIDFrom(ctx)

	var code, message string
	switch {
	case cause == nil:
		// lỗi parse/validate của graphql-go, message của thư viện đã an toàn
		code, message = CodeGraphQLValidationFailed, fe.Message
		log.Debug().Str("request_id", requestID).Str("error", fe.Message).Msg("GraphQL request rejected")

	case apperror.IsReportable(cause):
		code, message = apperror.CodeInternal, internalMessage
		log.Error().Err(cause).Str("request_id", requestID).Interface("path", fe.Path).Msg("GraphQL resolver failed")
		f.reporter.Capture(ctx, cause, map[string]string{
			"request_id": requestID,
			"source":     "graphql",
		})

	default:
		code, message = apperror.CodeOf(cause), apperror.PublicMessage(cause)
		log.Warn().Str("request_id", requestID).Str("code", code).Str("error", cause.Error()).Msg("GraphQL request error")
	}

	if f.counter != nil {
		f.counter.CountGraphQLError(code)
	}

	fe.Message = message
	fe.Extensions = map[string]interface{}{"code": code}
	return fe
}

// originalError trả về lỗi do resolver trả ra; nil nếu lỗi sinh ra ở tầng parse/validate
func originalError(fe gqlerrors.FormattedError) error {
	err := fe.OriginalError()
	for err != nil {
		var located *gqlerrors.Error
		if !errors.As(err, &located) {
			return err
		}
		if located.OriginalError == nil {
			return nil
		}
		err = located.OriginalError
	}
	return nil
}
