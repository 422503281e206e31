package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookcatalog-backend/internal/domains/review/model"
)

func TestBuildReviewSet(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rating := 2

	set := buildReviewSet(model.UpdateReviewInput{Rating: &rating}, now)
	assert.Equal(t, bson.M{"updatedAt": now, "rating": 2}, set)

	comment := "changed my mind"
	set = buildReviewSet(model.UpdateReviewInput{Comment: &comment}, now)
	assert.Equal(t, "changed my mind", set["comment"])
	assert.NotContains(t, set, "rating")
}

func TestAveragePipeline(t *testing.T) {
	p := averagePipeline([]int64{1, 2})
	assert.Len(t, p, 2)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, "$group", p[1][0].Key)
}

func TestToInt64(t *testing.T) {
	for _, v := range []interface{}{int64(7), int32(7), float64(7)} {
		got, ok := toInt64(v)
		assert.True(t, ok)
		assert.Equal(t, int64(7), got)
	}
	_, ok := toInt64("7")
	assert.False(t, ok)
}

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, ok := objectID(oid)
	assert.True(t, ok)
	assert.Equal(t, oid, got)

	_, ok = objectID("x")
	assert.False(t, ok)
}
