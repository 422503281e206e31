package service

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/author/model"
	"bookcatalog-backend/internal/shared/apperror"
	"bookcatalog-backend/internal/shared/pagination"
	"bookcatalog-backend/pkg/cache"
)

// fakeRepo keeps authors in memory with ascending ids
type fakeRepo struct {
	nextID     int64
	rows       map[int64]model.Author
	withBooks  map[int64]bool
	namesCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]model.Author{}, withBooks: map[int64]bool{}}
}

func (r *fakeRepo) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	r.nextID++
	a.ID = r.nextID
	r.rows[a.ID] = *a
	return a, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*model.Author, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, apperror.NotFound("author")
	}
	return &a, nil
}

func (r *fakeRepo) GetByIDs(_ context.Context, ids []int64) ([]model.Author, error) {
	var out []model.Author
	for _, id := range ids {
		if a, ok := r.rows[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, p model.AuthorPatch) (*model.Author, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, apperror.NotFound("author")
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Biography != nil {
		a.Biography = p.Biography
	}
	if p.BornDate != nil {
		a.BornDate = p.BornDate
	}
	if p.PhotoURL != nil {
		a.PhotoURL = p.PhotoURL
	}
	r.rows[id] = a
	return &a, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	if r.withBooks[id] {
		return false, apperror.Conflict("author still has books", nil)
	}
	_, ok := r.rows[id]
	delete(r.rows, id)
	return ok, nil
}

func (r *fakeRepo) matching(f model.AuthorFilter) []model.Author {
	var out []model.Author
	for _, a := range r.rows {
		if f.Name != nil && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(*f.Name)) {
			continue
		}
		if f.BirthYear != nil && (a.BornDate == nil || a.BornDate.Year() != *f.BirthYear) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeRepo) List(_ context.Context, f model.AuthorFilter, w pagination.Window) ([]model.Author, error) {
	var out []model.Author
	for _, a := range r.matching(f) {
		if (w.After != nil && a.ID <= *w.After) || (w.Before != nil && a.ID >= *w.Before) {
			continue
		}
		if len(out) == w.Limit {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context, f model.AuthorFilter) (int64, error) {
	return int64(len(r.matching(f))), nil
}

func (r *fakeRepo) ExistsBefore(_ context.Context, f model.AuthorFilter, id int64) (bool, error) {
	for _, a := range r.matching(f) {
		if a.ID < id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ListNamesAndIDs(context.Context) ([]model.AuthorNameID, error) {
	r.namesCalls++
	var out []model.AuthorNameID
	for _, a := range r.matching(model.AuthorFilter{}) {
		out = append(out, model.AuthorNameID{ID: a.ID, Name: a.Name})
	}
	return out, nil
}

func newService(t *testing.T) (ServiceInterface, *fakeRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newFakeRepo()
	return NewAuthorService(repo, cache.NewRedisCache(client, "test:")), repo
}

func strp(s string) *string { return &s }

func TestCreateTrimsAndValidates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, model.CreateAuthorInput{Name: "  Ada Lovelace ", BornDate: strp("1815-12-10")})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", a.Name)
	assert.Equal(t, 1815, a.BornDate.Year())

	_, err = svc.Create(ctx, model.CreateAuthorInput{Name: "   "})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateIsPartial(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, model.CreateAuthorInput{Name: "Ada", Biography: strp("Mathematician")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, model.UpdateAuthorInput{Name: strp("Ada Lovelace")})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "Mathematician", *updated.Biography)

	_, err = svc.Update(ctx, 999, model.UpdateAuthorInput{Name: strp("Nobody")})
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteTwiceReturnsFalseSecondTime(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, model.CreateAuthorInput{Name: "Ada"})
	require.NoError(t, err)

	ok, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteAuthorWithBooksIsConflict(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, model.CreateAuthorInput{Name: "Ada"})
	require.NoError(t, err)
	repo.withBooks[a.ID] = true

	_, err = svc.Delete(ctx, a.ID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, in := range []model.CreateAuthorInput{
		{Name: "Ada Lovelace", BornDate: strp("1815-12-10")},
		{Name: "Charles Babbage", BornDate: strp("1791-12-26")},
		{Name: "Adam Smith", BornDate: strp("1723-06-16")},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	conn, err := svc.List(ctx, model.AuthorFilter{Name: strp("ADA")}, pagination.Window{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), conn.TotalCount)
	require.Len(t, conn.Edges, 1)
	assert.Equal(t, "Ada Lovelace", conn.Edges[0].Node.Name)
	assert.True(t, conn.PageInfo.HasNextPage)

	year := 1791
	conn, err = svc.List(ctx, model.AuthorFilter{BirthYear: &year}, pagination.Window{Limit: 10})
	require.NoError(t, err)
	require.Len(t, conn.Edges, 1)
	assert.Equal(t, "Charles Babbage", conn.Edges[0].Node.Name)

	bad := 0
	_, err = svc.List(ctx, model.AuthorFilter{BirthYear: &bad}, pagination.Window{Limit: 10})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestNamesAndIDsCachedAndInvalidated(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	names, err := svc.NamesAndIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)

	_, err = svc.NamesAndIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.namesCalls)

	a, err := svc.Create(ctx, model.CreateAuthorInput{Name: "Ada"})
	require.NoError(t, err)

	names, err = svc.NamesAndIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.AuthorNameID{{ID: a.ID, Name: "Ada"}}, names)
	assert.Equal(t, 2, repo.namesCalls)
}
