package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookcatalog-backend/internal/domains/review/model"
	"bookcatalog-backend/internal/shared/apperror"
)

const CollectionName = "reviews"

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) RepositoryInterface {
	return &mongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes tạo index book_id (idempotent)
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	name, err := db.Collection(CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "book_id", Value: 1}},
		Options: options.Index().SetName("book_id_1"),
	})
	if err != nil {
		return apperror.Internal("create review indexes", err)
	}
	log.Info().Str("index", name).Msg("[MONGO] Review indexes ensured")
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	res, err := r.coll.InsertOne(ctx, rv)
	if err != nil {
		return nil, apperror.Internal("create review", err)
	}
	if oid, ok := objectID(res.InsertedID); ok {
		rv.ID = oid
	}
	return rv, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	var rv model.Review
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("review")
		}
		return nil, apperror.Internal("get review", err)
	}
	return &rv, nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, in model.UpdateReviewInput) (*model.Review, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var rv model.Review
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": buildReviewSet(in, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("review")
		}
		return nil, apperror.Internal("update review", err)
	}
	return &rv, nil
}

func buildReviewSet(in model.UpdateReviewInput, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if in.Rating != nil {
		set["rating"] = *in.Rating
	}
	if in.Comment != nil {
		set["comment"] = *in.Comment
	}
	return set
}

func (r *mongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, apperror.Internal("delete review", err)
	}
	return res.DeletedCount > 0, nil
}

// ========================================
// READS BY BOOK
// ========================================

func (r *mongoRepository) ListByBookID(ctx context.Context, bookID int64) ([]model.Review, error) {
	return r.find(ctx, bson.M{"book_id": bookID})
}

func (r *mongoRepository) ListByBookIDs(ctx context.Context, bookIDs []int64) ([]model.Review, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"book_id": bson.M{"$in": bookIDs}})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]model.Review, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperror.Internal("list reviews", err)
	}
	var out []model.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperror.Internal("decode reviews", err)
	}
	return out, nil
}

type ratingGroup struct {
	BookID  int64   `bson:"_id"`
	Average float64 `bson:"average"`
}

func averagePipeline(bookIDs []int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"book_id": bson.M{"$in": bookIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$book_id", "average": bson.M{"$avg": "$rating"}}}},
	}
}

func (r *mongoRepository) AverageRatingByBookIDs(ctx context.Context, bookIDs []int64) (map[int64]float64, error) {
	out := make(map[int64]float64, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}

	cur, err := r.coll.Aggregate(ctx, averagePipeline(bookIDs))
	if err != nil {
		return nil, apperror.Internal("aggregate ratings", err)
	}
	var groups []ratingGroup
	if err := cur.All(ctx, &groups); err != nil {
		return nil, apperror.Internal("decode ratings", err)
	}
	for _, g := range groups {
		out[g.BookID] = g.Average
	}
	return out, nil
}

// ========================================
// CLEANUP
// ========================================

func (r *mongoRepository) DeleteByBookID(ctx context.Context, bookID int64) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"book_id": bookID})
	if err != nil {
		return 0, apperror.Internal("delete reviews by book", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) DeleteByBookIDs(ctx context.Context, bookIDs []int64) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"book_id": bson.M{"$in": bookIDs}})
	if err != nil {
		return 0, apperror.Internal("delete reviews by books", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) DistinctBookIDs(ctx context.Context) ([]int64, error) {
	values, err := r.coll.Distinct(ctx, "book_id", bson.M{})
	if err != nil {
		return nil, apperror.Internal("distinct review book ids", err)
	}
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		if id, ok := toInt64(v); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// toInt64: driver decode số nguyên thành int32 hoặc int64 tuỳ giá trị lưu
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func objectID(v interface{}) (primitive.ObjectID, bool) {
	oid, ok := v.(primitive.ObjectID)
	return oid, ok
}
