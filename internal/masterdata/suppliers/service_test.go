package suppliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adhilst2002-a11y/sports-shop-inventory-management-system/internal/masterdata/shared"
)

type fakeRepo struct {
	items      map[int64]Supplier
	referenced map[int64]bool
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[int64]Supplier), referenced: make(map[int64]bool)}
}

func (r *fakeRepo) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int, error) {
	out := []Supplier{}
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Get(ctx context.Context, id int64) (Supplier, error) {
	s, ok := r.items[id]
	if !ok {
		return Supplier{}, shared.ErrNotFound
	}
	return s, nil
}

func (r *fakeRepo) Create(ctx context.Context, supplier Supplier) (Supplier, error) {
	r.nextID++
	supplier.ID = r.nextID
	r.items[supplier.ID] = supplier
	return supplier, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, supplier Supplier) error {
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	supplier.ID = id
	r.items[id] = supplier
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	if r.referenced[id] {
		return shared.ErrInUse
	}
	delete(r.items, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Supplier{ContactPerson: "Asha"})
	require.ErrorIs(t, err, shared.ErrValidation)

	created, err := svc.Create(context.Background(), Supplier{Name: "Gray-Nicolls Distribution"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
}

func TestUpdateValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Supplier{Name: "Gray-Nicolls Distribution"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Update(ctx, 0, Supplier{Name: "x"}), shared.ErrInvalidID)
	require.ErrorIs(t, svc.Update(ctx, created.ID, Supplier{Name: "   "}), shared.ErrValidation)

	require.NoError(t, svc.Update(ctx, created.ID, Supplier{Name: "GN Sports Wholesale"}))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "GN Sports Wholesale", got.Name)
}

func TestDeleteReferencedSupplier(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Supplier{Name: "Gray-Nicolls Distribution"})
	require.NoError(t, err)
	repo.referenced[created.ID] = true

	require.ErrorIs(t, svc.Delete(ctx, created.ID), shared.ErrInUse)

	repo.referenced[created.ID] = false
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), shared.ErrNotFound)
}
