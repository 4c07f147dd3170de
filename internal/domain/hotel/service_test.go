package hotel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelpms/internal/pkg/logger"
	"hotelpms/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	db := testutil.NewDB(t)
	return NewService(NewRepository(db), logger.Discard())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hotel-rio-grande", Slugify("Hotel Río Grande"))
	assert.Equal(t, "casa-1", Slugify("  Casa #1!! "))
	assert.Equal(t, "", Slugify("¡¿?!"))
}

func TestCreateGeneratesUniqueSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateHotelRequest{Name: "Hotel Sol"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateHotelRequest{Name: "Hotel Sol"})
	require.NoError(t, err)

	assert.Equal(t, "hotel-sol", first.Slug)
	assert.Equal(t, "hotel-sol-2", second.Slug)
	assert.False(t, first.IsBlocked)
}

func TestCreateRejectsTakenExplicitSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateHotelRequest{Name: "A", Slug: "central"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateHotelRequest{Name: "B", Slug: "central"})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestBlockAndFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateHotelRequest{Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateHotelRequest{Name: "Beta"})
	require.NoError(t, err)

	blocked, err := svc.SetBlocked(ctx, a.ID, true)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)

	yes := true
	list, err := svc.List(ctx, Filter{Blocked: &yes})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alpha", list[0].Name)

	_, err = svc.SetBlocked(ctx, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	h, err := svc.Create(ctx, CreateHotelRequest{Name: "Gamma"})
	require.NoError(t, err)

	name := "Gamma Plaza"
	phone := "+54 11 5555-0000"
	updated, err := svc.Update(ctx, h.ID, UpdateHotelRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Gamma Plaza", updated.Name)
	assert.Equal(t, "gamma", updated.Slug, "slug is stable across renames")
	assert.Equal(t, phone, updated.Phone)

	empty := "  "
	_, err = svc.Update(ctx, h.ID, UpdateHotelRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalid)
}
