package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/models"
)

func newTestCart(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(NewMemoryStore())
	require.NoError(t, err)
	return m
}

func TestAddLineMergesSameProductColor(t *testing.T) {
	m := newTestCart(t)
	shirt := Product{ID: "p1", Name: "Shirt", Price: 771}

	require.NoError(t, m.AddLine(shirt, 2, "Azure"))
	require.NoError(t, m.AddLine(shirt, 1, "Azure"))

	lines := m.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.InDelta(t, 2313, m.Subtotal(), 1e-9)

	// a different color for the same product is a distinct line
	require.NoError(t, m.AddLine(shirt, 1, "Coral"))
	require.Len(t, m.Lines(), 2)
	assert.Equal(t, 4, m.Count())
}

func TestAddLineRejectsMissingID(t *testing.T) {
	m := newTestCart(t)
	err := m.AddLine(Product{Name: "no id"}, 1, "")
	assert.ErrorIs(t, err, ErrNoProductID)
	assert.Empty(t, m.Lines())
}

func TestTotalsInvariant(t *testing.T) {
	m := newTestCart(t)
	require.NoError(t, m.AddLine(Product{ID: "p1", Price: 10}, 3, "Red"))
	require.NoError(t, m.AddLine(Product{ID: "p2", Price: 5.5}, 2, ""))

	assert.Equal(t, 5, m.Count())
	assert.InDelta(t, 41, m.Subtotal(), 1e-9)

	require.NoError(t, m.UpdateQuantity("p1", 1, "Red"))
	assert.Equal(t, 3, m.Count())
	assert.InDelta(t, 21, m.Subtotal(), 1e-9)
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	m := newTestCart(t)
	require.NoError(t, m.AddLine(Product{ID: "p1", Price: 10}, 2, "Red"))

	require.NoError(t, m.UpdateQuantity("p1", 0, "Red"))
	assert.Empty(t, m.Lines())
	assert.Zero(t, m.Count())
	assert.Zero(t, m.Subtotal())
}

func TestRemoveLine(t *testing.T) {
	m := newTestCart(t)
	p := Product{ID: "p1", Price: 10}
	require.NoError(t, m.AddLine(p, 1, "Red"))
	require.NoError(t, m.AddLine(p, 1, "Blue"))
	require.NoError(t, m.AddLine(Product{ID: "p2", Price: 1}, 1, ""))

	t.Run("with color removes only that variant", func(t *testing.T) {
		require.NoError(t, m.RemoveLine("p1", "Red"))
		require.Len(t, m.Lines(), 2)
		assert.Equal(t, "Blue", m.Lines()[0].Color)
	})

	t.Run("without color removes every line of the product", func(t *testing.T) {
		require.NoError(t, m.AddLine(p, 1, "Red"))
		require.NoError(t, m.RemoveLine("p1", ""))
		require.Len(t, m.Lines(), 1)
		assert.Equal(t, "p2", m.Lines()[0].ProductID)
	})
}

func TestClear(t *testing.T) {
	m := newTestCart(t)
	require.NoError(t, m.AddLine(Product{ID: "p1", Price: 10}, 2, ""))
	require.NoError(t, m.Clear())
	assert.Empty(t, m.Lines())
	assert.Zero(t, m.Count())
}

func TestCartSurvivesReload(t *testing.T) {
	store := NewMemoryStore()
	m, err := NewManager(store)
	require.NoError(t, err)
	require.NoError(t, m.AddLine(Product{ID: "p1", Name: "Shirt", Price: 771}, 2, "Azure"))

	reloaded, err := NewManager(store)
	require.NoError(t, err)
	require.Len(t, reloaded.Lines(), 1)
	assert.Equal(t, 2, reloaded.Count())
	assert.InDelta(t, 1542, reloaded.Subtotal(), 1e-9)
}

func TestFromCatalog(t *testing.T) {
	catalog := models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Shirt",
		Price: 771,
		Variants: []models.ProductVariant{
			{Color: "Azure", Images: []string{"azure-front.jpg", "azure-back.jpg"}},
			{Color: "Coral", Images: []string{"coral-front.jpg"}},
		},
	}

	p := FromCatalog(catalog, "Coral")
	assert.Equal(t, catalog.ID.Hex(), p.ID)
	assert.Equal(t, "coral-front.jpg", p.Image)

	t.Run("unknown color falls back to first variant", func(t *testing.T) {
		assert.Equal(t, "azure-front.jpg", FromCatalog(catalog, "Mint").Image)
	})

	t.Run("no variants means no image", func(t *testing.T) {
		bare := models.Product{ID: primitive.NewObjectID(), Name: "Mug", Price: 99}
		assert.Empty(t, FromCatalog(bare, "Azure").Image)
	})

	t.Run("unsaved product is rejected by AddLine", func(t *testing.T) {
		m := newTestCart(t)
		err := m.AddLine(FromCatalog(models.Product{Name: "draft"}, ""), 1, "")
		assert.ErrorIs(t, err, ErrNoProductID)
	})
}

func TestMemoryStoreCopiesOnLoad(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(Key, []byte(`[{"productId":"p1"}]`)))

	data, ok, err := store.Load(Key)
	require.NoError(t, err)
	require.True(t, ok)
	for i := range data {
		data[i] = 'x'
	}

	again, _, err := store.Load(Key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1"}]`, string(again), "caller mutation must not reach the store")
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := store.Load(Key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(Key, []byte(`[{"productId":"p1"}]`)))
	data, ok, err := store.Load(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"productId":"p1"}]`, string(data))

	require.NoError(t, store.Delete(Key))
	_, ok, err = store.Load(Key)
	require.NoError(t, err)
	assert.False(t, ok)
	// deleting twice is fine
	require.NoError(t, store.Delete(Key))
}
