package service

import (
	"context"
	"encoding/json"
	"testing"

	"mystorefront/domain"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartForTest(t *testing.T) (*CartStore, *fakeStorage, *recordingNotifier) {
	t.Helper()
	storage := newFakeStorage()
	notifier := &recordingNotifier{}
	return NewCartStore(context.Background(), storage, notifier, log.NewNopLogger()), storage, notifier
}

func storedCart(t *testing.T, storage *fakeStorage) []domain.CartItem {
	t.Helper()
	raw, ok := storage.m[domain.KeyCart]
	require.True(t, ok, "cart not persisted")
	var items []domain.CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	return items
}

func TestNewCartStore_Panics(t *testing.T) {
	ctx := context.Background()
	storage := newFakeStorage()
	notifier := &recordingNotifier{}
	logger := log.NewNopLogger()

	assert.PanicsWithValue(t, "service.cart.go: storage is required", func() {
		NewCartStore(ctx, nil, notifier, logger)
	})
	assert.PanicsWithValue(t, "service.cart.go: notifier is required", func() {
		NewCartStore(ctx, storage, nil, logger)
	})
	assert.PanicsWithValue(t, "service.cart.go: logger is required", func() {
		NewCartStore(ctx, storage, notifier, nil)
	})
}

func TestNewCartStore_Rehydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("restores_persisted_items", func(t *testing.T) {
		storage := newFakeStorage()
		storage.m[domain.KeyCart] = `[{"id":1,"name":"Mouse","price":59.9,"stock":10,"quantity":2}]`
		s := NewCartStore(ctx, storage, &recordingNotifier{}, log.NewNopLogger())

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].ID)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("panel_starts_hidden_even_when_flag_persisted_true", func(t *testing.T) {
		storage := newFakeStorage()
		storage.m[domain.KeyCartVisible] = "true"
		s := NewCartStore(ctx, storage, &recordingNotifier{}, log.NewNopLogger())
		assert.False(t, s.Visible())
	})

	t.Run("corrupt_persisted_cart_is_discarded_and_deleted", func(t *testing.T) {
		storage := newFakeStorage()
		storage.m[domain.KeyCart] = "{not json"
		s := NewCartStore(ctx, storage, &recordingNotifier{}, log.NewNopLogger())

		assert.Empty(t, s.Items())
		_, ok := storage.m[domain.KeyCart]
		assert.False(t, ok, "corrupt record should be deleted")
	})

	t.Run("missing_cart_starts_empty", func(t *testing.T) {
		s, _, _ := newCartForTest(t)
		assert.NotNil(t, s.Items())
		assert.Empty(t, s.Items())
	})
}

func TestCartStore_AddToCart(t *testing.T) {
	ctx := context.Background()
	mouse := domain.Product{ID: 1, Name: "Mouse", Price: 59.9, Stock: 3}

	t.Run("adds_new_item_and_persists", func(t *testing.T) {
		s, storage, notifier := newCartForTest(t)
		s.AddToCart(ctx, mouse, 2)

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, []string{"added to cart"}, notifier.successes)
		assert.Equal(t, items, storedCart(t, storage))
	})

	t.Run("quantity_below_one_counts_as_one", func(t *testing.T) {
		s, _, _ := newCartForTest(t)
		s.AddToCart(ctx, mouse, 0)
		require.Len(t, s.Items(), 1)
		assert.Equal(t, 1, s.Items()[0].Quantity)
	})

	t.Run("out_of_stock_refused_with_warning", func(t *testing.T) {
		s, storage, notifier := newCartForTest(t)
		s.AddToCart(ctx, domain.Product{ID: 2, Name: "Hub", Stock: 0}, 1)

		assert.Empty(t, s.Items())
		assert.Equal(t, []string{"product is out of stock"}, notifier.warnings)
		_, persisted := storage.m[domain.KeyCart]
		assert.False(t, persisted, "refused add must not persist")
	})

	t.Run("increments_existing_item_up_to_stock", func(t *testing.T) {
		s, _, notifier := newCartForTest(t)
		s.AddToCart(ctx, mouse, 1)
		s.AddToCart(ctx, mouse, 2)

		require.Len(t, s.Items(), 1)
		assert.Equal(t, 3, s.Items()[0].Quantity)
		assert.Len(t, notifier.successes, 2)
	})

	t.Run("increment_past_stock_leaves_state_unchanged", func(t *testing.T) {
		s, _, notifier := newCartForTest(t)
		s.AddToCart(ctx, mouse, 3)
		s.AddToCart(ctx, mouse, 1)

		assert.Equal(t, 3, s.Items()[0].Quantity)
		assert.Equal(t, []string{"maximum stock reached"}, notifier.warnings)
	})

	t.Run("fresh_insert_past_stock_is_refused", func(t *testing.T) {
		s, _, notifier := newCartForTest(t)
		s.AddToCart(ctx, mouse, 4)

		assert.Empty(t, s.Items())
		assert.Equal(t, []string{"maximum stock reached"}, notifier.warnings)
	})
}

func TestCartStore_RemoveFromCart(t *testing.T) {
	ctx := context.Background()
	mouse := domain.Product{ID: 1, Name: "Mouse", Price: 59.9, Stock: 3}

	t.Run("removes_and_notifies", func(t *testing.T) {
		s, storage, notifier := newCartForTest(t)
		s.AddToCart(ctx, mouse, 1)
		s.RemoveFromCart(ctx, mouse.ID)

		assert.Empty(t, s.Items())
		assert.Contains(t, notifier.successes, "removed from cart")
		assert.Empty(t, storedCart(t, storage))
	})

	t.Run("absent_product_is_silent_noop", func(t *testing.T) {
		s, _, notifier := newCartForTest(t)
		s.RemoveFromCart(ctx, 99)
		assert.Empty(t, notifier.successes)
	})
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	mouse := domain.Product{ID: 1, Name: "Mouse", Price: 59.9, Stock: 3}

	newCart := func(t *testing.T, quantity int) (*CartStore, *recordingNotifier) {
		s, _, notifier := newCartForTest(t)
		s.AddToCart(ctx, mouse, quantity)
		return s, notifier
	}

	t.Run("applies_delta_within_bounds", func(t *testing.T) {
		s, _ := newCart(t, 1)
		s.UpdateQuantity(ctx, mouse.ID, 1)
		assert.Equal(t, 2, s.Items()[0].Quantity)
		s.UpdateQuantity(ctx, mouse.ID, -1)
		assert.Equal(t, 1, s.Items()[0].Quantity)
	})

	t.Run("decrement_to_zero_is_silently_ignored", func(t *testing.T) {
		s, notifier := newCart(t, 1)
		s.UpdateQuantity(ctx, mouse.ID, -1)
		assert.Equal(t, 1, s.Items()[0].Quantity)
		assert.Empty(t, notifier.warnings)
	})

	t.Run("increment_past_stock_is_silently_ignored", func(t *testing.T) {
		s, notifier := newCart(t, 3)
		s.UpdateQuantity(ctx, mouse.ID, 1)
		assert.Equal(t, 3, s.Items()[0].Quantity)
		assert.Empty(t, notifier.warnings)
	})

	t.Run("absent_product_is_noop", func(t *testing.T) {
		s, _ := newCart(t, 1)
		s.UpdateQuantity(ctx, 99, 1)
		assert.Equal(t, 1, s.Items()[0].Quantity)
	})
}

func TestCartStore_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle_flips_and_persists", func(t *testing.T) {
		s, storage, _ := newCartForTest(t)
		s.ToggleCart(ctx)
		assert.True(t, s.Visible())
		assert.Equal(t, "true", storage.m[domain.KeyCartVisible])

		s.ToggleCart(ctx)
		assert.False(t, s.Visible())
		assert.Equal(t, "false", storage.m[domain.KeyCartVisible])
	})

	t.Run("close_hides", func(t *testing.T) {
		s, storage, _ := newCartForTest(t)
		s.ToggleCart(ctx)
		s.CloseCart(ctx)
		assert.False(t, s.Visible())
		assert.Equal(t, "false", storage.m[domain.KeyCartVisible])
	})
}

func TestCartStore_ClearCart(t *testing.T) {
	ctx := context.Background()
	mouse := domain.Product{ID: 1, Name: "Mouse", Price: 59.9, Stock: 3}

	s, storage, _ := newCartForTest(t)
	s.AddToCart(ctx, mouse, 2)
	s.ToggleCart(ctx)
	s.ClearCart(ctx)

	assert.Empty(t, s.Items())
	assert.False(t, s.Visible())
	assert.Zero(t, s.TotalAmount())
	_, cartPersisted := storage.m[domain.KeyCart]
	assert.False(t, cartPersisted, "cart record should be erased")
	assert.Equal(t, "false", storage.m[domain.KeyCartVisible])
}

func TestCartStore_TotalAmount(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newCartForTest(t)
	s.AddToCart(ctx, domain.Product{ID: 1, Name: "Mouse", Price: 59.9, Stock: 5}, 2)
	s.AddToCart(ctx, domain.Product{ID: 2, Name: "Stand", Price: 89.0, Stock: 5}, 1)

	assert.InDelta(t, 59.9*2+89.0, s.TotalAmount(), 1e-9)

	s.UpdateQuantity(ctx, 1, -1)
	assert.InDelta(t, 59.9+89.0, s.TotalAmount(), 1e-9)
}

func TestCartStore_ItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newCartForTest(t)
	s.AddToCart(ctx, domain.Product{ID: 1, Name: "Mouse", Price: 59.9, Stock: 5}, 1)

	items := s.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Items()[0].Quantity)
}
