package loader

import (
	"context"

	"github.com/graph-gophers/dataloader/v7"

	authormodel "bookcatalog-backend/internal/domains/author/model"
	bookmodel "bookcatalog-backend/internal/domains/book/model"
	reviewmodel "bookcatalog-backend/internal/domains/review/model"
)

// Mọi batch function trả về đúng len(keys) kết quả, kết quả i ứng với keys[i].
// Key không có dữ liệu nhận zero value (nil author, slice rỗng, count 0, rating nil).

func BatchAuthorsByID(src AuthorSource) dataloader.BatchFunc[int64, *authormodel.Author] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[*authormodel.Author] {
		rows, err := src.GetByIDs(ctx, unique(keys))
		if err != nil {
			return failAll[*authormodel.Author](len(keys), err)
		}

		byID := make(map[int64]*authormodel.Author, len(rows))
		for i := range rows {
			byID[rows[i].ID] = &rows[i]
		}

		out := make([]*dataloader.Result[*authormodel.Author], len(keys))
		for i, k := range keys {
			out[i] = &dataloader.Result[*authormodel.Author]{Data: byID[k]}
		}
		return out
	}
}

func BatchBooksByAuthorID(src BookSource) dataloader.BatchFunc[int64, []bookmodel.Book] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[[]bookmodel.Book] {
		rows, err := src.ListByAuthorIDs(ctx, unique(keys))
		if err != nil {
			return failAll[[]bookmodel.Book](len(keys), err)
		}

		grouped := make(map[int64][]bookmodel.Book, len(keys))
		for _, b := range rows {
			grouped[b.AuthorID] = append(grouped[b.AuthorID], b)
		}

		out := make([]*dataloader.Result[[]bookmodel.Book], len(keys))
		for i, k := range keys {
			books := grouped[k]
			if books == nil {
				books = []bookmodel.Book{}
			}
			out[i] = &dataloader.Result[[]bookmodel.Book]{Data: books}
		}
		return out
	}
}

func BatchBookCountByAuthorID(src BookSource) dataloader.BatchFunc[int64, int64] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[int64] {
		counts, err := src.CountByAuthorIDs(ctx, unique(keys))
		if err != nil {
			return failAll[int64](len(keys), err)
		}

		out := make([]*dataloader.Result[int64], len(keys))
		for i, k := range keys {
			out[i] = &dataloader.Result[int64]{Data: counts[k]}
		}
		return out
	}
}

func BatchReviewsByBookID(src ReviewSource) dataloader.BatchFunc[int64, []reviewmodel.Review] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[[]reviewmodel.Review] {
		rows, err := src.ListByBookIDs(ctx, unique(keys))
		if err != nil {
			return failAll[[]reviewmodel.Review](len(keys), err)
		}

		grouped := make(map[int64][]reviewmodel.Review, len(keys))
		for _, r := range rows {
			grouped[r.BookID] = append(grouped[r.BookID], r)
		}

		out := make([]*dataloader.Result[[]reviewmodel.Review], len(keys))
		for i, k := range keys {
			reviews := grouped[k]
			if reviews == nil {
				reviews = []reviewmodel.Review{}
			}
			out[i] = &dataloader.Result[[]reviewmodel.Review]{Data: reviews}
		}
		return out
	}
}

func BatchAverageRatingByBookID(src ReviewSource) dataloader.BatchFunc[int64, *float64] {
	return func(ctx context.Context, keys []int64) []*dataloader.Result[*float64] {
		avg, err := src.AverageRatingByBookIDs(ctx, unique(keys))
		if err != nil {
			return failAll[*float64](len(keys), err)
		}

		out := make([]*dataloader.Result[*float64], len(keys))
		for i, k := range keys {
			var v *float64
			if a, ok := avg[k]; ok {
				v = &a
			}
			out[i] = &dataloader.Result[*float64]{Data: v}
		}
		return out
	}
}

func failAll[V any](n int, err error) []*dataloader.Result[V] {
	out := make([]*dataloader.Result[V], n)
	for i := range out {
		out[i] = &dataloader.Result[V]{Error: err}
	}
	return out
}

// unique giữ thứ tự xuất hiện đầu tiên
func unique(keys []int64) []int64 {
	seen := make(map[int64]struct{}, len(keys))
	out := make([]int64, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
