package branch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items map[string]*Branch
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]*Branch{}}
}

func (f *fakeRepo) Create(_ context.Context, b *Branch) error {
	f.seq++
	b.ID = fmt.Sprintf("branch-%d", f.seq)
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Branch, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*Branch, error) {
	var out []*Branch
	for _, b := range f.items {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, b *Branch) error {
	if _, ok := f.items[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	f.items[b.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func str(s string) *string { return &s }

func TestCreate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	t.Run("name is required", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "   "})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("hours must parse", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "Downtown", OpenTime: str("9am")})
		assert.ErrorIs(t, err, ErrInvalidHours)

		_, err = svc.Create(ctx, CreateRequest{Name: "Downtown", CloseTime: str("25:00")})
		assert.ErrorIs(t, err, ErrInvalidHours)
	})

	t.Run("close before open is allowed", func(t *testing.T) {
		// Overnight branches close past midnight.
		b, err := svc.Create(ctx, CreateRequest{Name: "Night Owl", OpenTime: str("22:00"), CloseTime: str("02:00")})
		require.NoError(t, err)
		assert.Equal(t, "22:00", *b.OpenTime)
		assert.Equal(t, "02:00", *b.CloseTime)
	})

	t.Run("empty hours stay unset", func(t *testing.T) {
		b, err := svc.Create(ctx, CreateRequest{Name: "Plain", OpenTime: str("")})
		require.NoError(t, err)
		assert.Nil(t, b.OpenTime)
		assert.Nil(t, b.CloseTime)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		b, err := svc.Create(ctx, CreateRequest{Name: "  Harbor  "})
		require.NoError(t, err)
		assert.Equal(t, "Harbor", b.Name)
	})
}

func TestUpdate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{Name: "Downtown", OpenTime: str("09:00"), CloseTime: str("21:00")})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, b.ID, UpdateRequest{Phone: str("02-12345678")})
		require.NoError(t, err)
		assert.Equal(t, "Downtown", updated.Name)
		assert.Equal(t, "02-12345678", updated.Phone)
		assert.Equal(t, "09:00", *updated.OpenTime)
	})

	t.Run("invalid hours rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, b.ID, UpdateRequest{OpenTime: str("noon")})
		assert.ErrorIs(t, err, ErrInvalidHours)
	})

	t.Run("clearing hours reverts to defaults downstream", func(t *testing.T) {
		updated, err := svc.Update(ctx, b.ID, UpdateRequest{OpenTime: str("")})
		require.NoError(t, err)
		assert.Nil(t, updated.OpenTime)
	})

	t.Run("unknown branch", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", UpdateRequest{Name: str("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrNotFound)
}
