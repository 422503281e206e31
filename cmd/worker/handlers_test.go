package main

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"bookcatalog-backend/internal/shared"
)

func TestRegisterHandlersCoversEveryTaskType(t *testing.T) {
	mux := asynq.NewServeMux()
	(&HandlerRegistry{}).RegisterHandlers(mux)

	for _, typ := range []string{shared.TypePurgeBookReviews, shared.TypeSweepOrphanReviews, shared.TypeProcessCover} {
		_, pattern := mux.Handler(asynq.NewTask(typ, nil))
		assert.Equal(t, typ, pattern)
	}
}
