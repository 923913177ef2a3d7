package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

func TestMemoryFilmRepo_ReadsAreCopies(t *testing.T) {
	repo := NewMemoryFilmRepo([]model.Film{sampleFilm("f2"), sampleFilm("f1")})
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "f1", all[0].ID)

	all[0].Schedule[0].Taken = append(all[0].Schedule[0].Taken, "9:9")
	f, err := repo.FindByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, model.Taken{"1:1"}, f.Schedule[0].Taken)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	some, err := repo.FindByIDs(ctx, []string{"f2", "zz"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "f2", some[0].ID)
}

func TestMemoryFilmRepo_SaveTaken(t *testing.T) {
	repo := NewMemoryFilmRepo([]model.Film{sampleFilm("f1")})
	ctx := context.Background()

	require.NoError(t, repo.SaveTaken(ctx, "f1", "s1", model.Taken{"1:1"}, model.Taken{"1:1", "2:2"}))
	f, err := repo.FindByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, model.Taken{"1:1", "2:2"}, f.Schedule[0].Taken)

	err = repo.SaveTaken(ctx, "f1", "s1", model.Taken{"1:1"}, model.Taken{"1:1", "3:3"})
	assert.ErrorIs(t, err, ErrStaleSession)

	err = repo.SaveTaken(ctx, "zz", "s1", nil, nil)
	assert.ErrorIs(t, err, ErrFilmNotFound)

	_, err = repo.FindByID(ctx, "zz")
	assert.ErrorIs(t, err, ErrFilmNotFound)
}
