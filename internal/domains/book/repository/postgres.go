package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/pagination"
	"bookcatalog-backend/internal/shared/sqlfilter"
)

const bookColumns = `id, title, description, published_date, author_id, cover_url, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.PublishedDate, &b.AuthorID, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Book, error) {
		return scanBook(row)
	})
}

// translateWriteErr: FK violation khi ghi book luôn là author_id không tồn tại
func translateWriteErr(err error, op string) error {
	if apperror.IsForeignKeyViolation(err) {
		return apperror.Conflict("referenced author does not exist", err)
	}
	return apperror.FromPg(err, op)
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, description, published_date, author_id, cover_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query, b.Title, b.Description, b.PublishedDate, b.AuthorID, b.CoverURL))
	if err != nil {
		return nil, translateWriteErr(err, "create book")
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	b, err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("book")
		}
		return nil, apperror.FromPg(err, "get book")
	}
	return &b, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.BookPatch) (*model.Book, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query, args := buildBookUpdate(id, patch)
	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("book")
		}
		return nil, translateWriteErr(err, "update book")
	}
	return &b, nil
}

func buildBookUpdate(id int64, patch model.BookPatch) (string, []any) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.PublishedDate != nil {
		set("published_date", *patch.PublishedDate)
	}
	if patch.AuthorID != nil {
		set("author_id", *patch.AuthorID)
	}
	if patch.CoverURL != nil {
		set("cover_url", *patch.CoverURL)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), bookColumns)
	return query, args
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, apperror.FromPg(err, "delete book")
	}
	return tag.RowsAffected() > 0, nil
}

// ========================================
// CONNECTION QUERIES
// ========================================

func bookPredicates(f model.BookFilter) []sqlfilter.Predicate {
	var preds []sqlfilter.Predicate
	if f.Title != nil && *f.Title != "" {
		preds = append(preds, sqlfilter.Substring(sqlfilter.Title, *f.Title))
	}
	if f.AuthorName != nil && *f.AuthorName != "" {
		preds = append(preds, sqlfilter.AuthorNameSubstring(*f.AuthorName))
	}
	if f.PublishedYear != nil {
		preds = append(preds, sqlfilter.YearRange(sqlfilter.PublishedDate, *f.PublishedYear))
	}
	return preds
}

func (r *postgresRepository) List(ctx context.Context, f model.BookFilter, w pagination.Window) ([]model.Book, error) {
	b := sqlfilter.New(bookPredicates(f)...)
	for _, p := range sqlfilter.IDWindow(w.After, w.Before) {
		b.Add(p)
	}
	limit := b.Arg(w.Limit)

	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books`+b.Where()+` ORDER BY id ASC LIMIT `+limit, b.Args()...)
	if err != nil {
		return nil, apperror.FromPg(err, "list books")
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, apperror.FromPg(err, "scan books")
	}
	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context, f model.BookFilter) (int64, error) {
	b := sqlfilter.New(bookPredicates(f)...)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return 0, apperror.FromPg(err, "count books")
	}
	return total, nil
}

func (r *postgresRepository) ExistsBefore(ctx context.Context, f model.BookFilter, id int64) (bool, error) {
	b := sqlfilter.New(bookPredicates(f)...).Add(sqlfilter.IDBefore(id))

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books`+b.Where()+`)`, b.Args()...).Scan(&exists); err != nil {
		return false, apperror.FromPg(err, "check previous books")
	}
	return exists, nil
}

// ========================================
// BATCH READS
// ========================================

func (r *postgresRepository) ListByAuthorIDs(ctx context.Context, authorIDs []int64) ([]model.Book, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author_id = ANY($1) ORDER BY id ASC`, authorIDs)
	if err != nil {
		return nil, apperror.FromPg(err, "list books by authors")
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, apperror.FromPg(err, "scan books")
	}
	return books, nil
}

// CountByAuthorIDs đếm bằng GROUP BY, author không có book sẽ vắng mặt trong map
func (r *postgresRepository) CountByAuthorIDs(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT author_id, COUNT(*) FROM books WHERE author_id = ANY($1) GROUP BY author_id`, authorIDs)
	if err != nil {
		return nil, apperror.FromPg(err, "count books by authors")
	}
	defer rows.Close()

	for rows.Next() {
		var authorID, n int64
		if err := rows.Scan(&authorID, &n); err != nil {
			return nil, apperror.FromPg(err, "scan book counts")
		}
		counts[authorID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.FromPg(err, "scan book counts")
	}
	return counts, nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id FROM books WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, apperror.FromPg(err, "check book ids")
	}
	existing, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, apperror.FromPg(err, "scan book ids")
	}
	return existing, nil
}

// Đọc từ sequence chứ không phải MAX(id): book có id lớn nhất đã bị xóa vẫn tính
func (r *postgresRepository) HighestIssuedID(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(pg_sequence_last_value(pg_get_serial_sequence('books', 'id')), 0)`,
	).Scan(&id)
	if err != nil {
		return 0, apperror.FromPg(err, "read books id sequence")
	}
	return id, nil
}

func (r *postgresRepository) ListForExport(ctx context.Context, f model.BookFilter, limit int) ([]model.ExportRow, error) {
	b := sqlfilter.New(bookPredicates(f)...)
	lim := b.Arg(limit)

	// filter và limit áp dụng trên books trước, join authors sau
	query := `
        SELECT b.id, b.title, b.description, b.published_date, b.author_id, b.cover_url,
               b.created_at, b.updated_at, a.name
        FROM (SELECT ` + bookColumns + ` FROM books` + b.Where() + ` ORDER BY id ASC LIMIT ` + lim + `) b
        JOIN authors a ON a.id = b.author_id
        ORDER BY b.id ASC`

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, apperror.FromPg(err, "export books")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ExportRow, error) {
		var e model.ExportRow
		err := row.Scan(&e.ID, &e.Title, &e.Description, &e.PublishedDate, &e.AuthorID, &e.CoverURL,
			&e.CreatedAt, &e.UpdatedAt, &e.AuthorName)
		return e, err
	})
	if err != nil {
		return nil, apperror.FromPg(err, "scan export rows")
	}
	return out, nil
}
