package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/pagination"
	"bookcatalog-backend/internal/shared/sqlfilter"
)

const authorColumns = `id, name, biography, born_date, photo_url, created_at, updated_at`

// postgresRepository implements RepositoryInterface with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanAuthor(row pgx.Row) (model.Author, error) {
	var a model.Author
	err := row.Scan(&a.ID, &a.Name, &a.Biography, &a.BornDate, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func collectAuthors(rows pgx.Rows) ([]model.Author, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Author, error) {
		return scanAuthor(row)
	})
}

// Create inserts a new author; id and timestamps are assigned by the store
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, biography, born_date, photo_url)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Biography, a.BornDate, a.PhotoURL))
	if err != nil {
		return nil, apperror.FromPg(err, "create author")
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("author")
		}
		return nil, apperror.FromPg(err, "get author")
	}
	return &a, nil
}

// GetByIDs: một query cho cả batch (= ANY), dùng bởi dataloader
func (r *postgresRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.FromPg(err, "get authors by ids")
	}
	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, apperror.FromPg(err, "scan authors")
	}
	return authors, nil
}

// Update applies only the non-nil fields of patch and returns the fresh row
func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.AuthorPatch) (*model.Author, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	query, args := buildAuthorUpdate(id, patch)
	a, err := scanAuthor(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("author")
		}
		return nil, apperror.FromPg(err, "update author")
	}
	return &a, nil
}

func buildAuthorUpdate(id int64, patch model.AuthorPatch) (string, []any) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Biography != nil {
		set("biography", *patch.Biography)
	}
	if patch.BornDate != nil {
		set("born_date", *patch.BornDate)
	}
	if patch.PhotoURL != nil {
		set("photo_url", *patch.PhotoURL)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE authors SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), authorColumns)
	return query, args
}

// Delete reports whether a row existed. Authors that still own books cannot be deleted.
func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return false, apperror.Conflict("author still has books", err)
		}
		return false, apperror.FromPg(err, "delete author")
	}
	return tag.RowsAffected() > 0, nil
}

// ========================================
// CONNECTION QUERIES
// ========================================

func authorPredicates(f model.AuthorFilter) []sqlfilter.Predicate {
	var preds []sqlfilter.Predicate
	if f.Name != nil && *f.Name != "" {
		preds = append(preds, sqlfilter.Substring(sqlfilter.Name, *f.Name))
	}
	if f.BirthYear != nil {
		preds = append(preds, sqlfilter.YearRange(sqlfilter.BornDate, *f.BirthYear))
	}
	return preds
}

func (r *postgresRepository) List(ctx context.Context, f model.AuthorFilter, w pagination.Window) ([]model.Author, error) {
	b := sqlfilter.New(authorPredicates(f)...)
	for _, p := range sqlfilter.IDWindow(w.After, w.Before) {
		b.Add(p)
	}
	limit := b.Arg(w.Limit)

	query := `SELECT ` + authorColumns + ` FROM authors` + b.Where() + ` ORDER BY id ASC LIMIT ` + limit

	rows, err := r.pool.Query(ctx, query, b.Args()...)
	if err != nil {
		return nil, apperror.FromPg(err, "list authors")
	}
	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, apperror.FromPg(err, "scan authors")
	}
	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context, f model.AuthorFilter) (int64, error) {
	b := sqlfilter.New(authorPredicates(f)...)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return 0, apperror.FromPg(err, "count authors")
	}
	return total, nil
}

func (r *postgresRepository) ExistsBefore(ctx context.Context, f model.AuthorFilter, id int64) (bool, error) {
	b := sqlfilter.New(authorPredicates(f)...).Add(sqlfilter.IDBefore(id))

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM authors`+b.Where()+`)`, b.Args()...).Scan(&exists); err != nil {
		return false, apperror.FromPg(err, "check previous authors")
	}
	return exists, nil
}

func (r *postgresRepository) ListNamesAndIDs(ctx context.Context) ([]model.AuthorNameID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM authors ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, apperror.FromPg(err, "list author names")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AuthorNameID, error) {
		var n model.AuthorNameID
		err := row.Scan(&n.ID, &n.Name)
		return n, err
	})
	if err != nil {
		return nil, apperror.FromPg(err, "scan author names")
	}
	return out, nil
}
