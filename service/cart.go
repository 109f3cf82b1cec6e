package service

import (
	"context"
	"sync"

	"mystorefront/domain"
	"mystorefront/helpers"
	"mystorefront/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	msgOutOfStock      = "product is out of stock"
	msgMaxStockReached = "maximum stock reached"
	msgAddedToCart     = "added to cart"
	msgRemovedFromCart = "removed from cart"
)

// CartStore owns the cart line items (insertion order is display order) and
// the panel visibility flag. Every mutation writes through to storage: the
// items as a JSON array under "cart", the flag as "true"/"false" under
// "cartVisible". The total is never stored — it is recomputed from the line
// items on every read, so it cannot drift.
type CartStore struct {
	storage  interfaces.Storage
	notifier interfaces.Notifier
	logger   log.Logger

	mu      sync.Mutex
	items   []domain.CartItem
	visible bool
}

// NewCartStore creates the store and rehydrates the persisted cart. A
// malformed stored cart is discarded and its key deleted, never fatal. The
// panel always starts hidden regardless of the persisted flag. Panics on any
// nil dependency.
//
// Called from cmd/storefront when building the app.
func NewCartStore(ctx context.Context, storage interfaces.Storage, notifier interfaces.Notifier, logger log.Logger) *CartStore {
	s := &CartStore{
		storage:  helpers.NilPanic(storage, "service.cart.go: storage is required"),
		notifier: helpers.NilPanic(notifier, "service.cart.go: notifier is required"),
		logger:   log.WithPrefix(helpers.NilPanic(logger, "service.cart.go: logger is required"), "component", "CartStore"),
		items:    []domain.CartItem{},
	}
	items, err := helpers.GetJSON[[]domain.CartItem](ctx, s.storage, domain.KeyCart)
	if err != nil {
		if !IsEntityNotFound(err) {
			level.Error(s.logger).Log("msg", "discarding corrupt persisted cart", "err", err)
			if delErr := s.storage.Delete(ctx, domain.KeyCart); delErr != nil {
				level.Error(s.logger).Log("msg", "delete corrupt persisted cart", "err", delErr)
			}
		}
		return s
	}
	if items != nil {
		s.items = items
	}
	return s
}

// AddToCart puts quantity units of product into the cart. A product with no
// stock is refused with a warning. If the product is already in the cart the
// quantity is incremented, but only while the result stays within stock;
// otherwise the state is left unchanged and a "maximum stock reached" warning
// is emitted. The same stock cap applies to a fresh insert. Every accepted
// mutation emits a success notification. quantity below 1 counts as 1.
func (s *CartStore) AddToCart(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if product.Stock <= 0 {
		s.notifier.Warning(msgOutOfStock)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != product.ID {
			continue
		}
		if s.items[i].Quantity+quantity > product.Stock {
			s.notifier.Warning(msgMaxStockReached)
			return
		}
		s.items[i].Quantity += quantity
		s.persistCart(ctx)
		s.notifier.Success(msgAddedToCart)
		return
	}
	if quantity > product.Stock {
		s.notifier.Warning(msgMaxStockReached)
		return
	}
	s.items = append(s.items, domain.NewCartItem(product, quantity))
	s.persistCart(ctx)
	s.notifier.Success(msgAddedToCart)
}

// RemoveFromCart removes the item with the given product ID. Removing an
// absent product is a silent no-op; the success notification fires only when
// a removal actually happened.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != productID {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persistCart(ctx)
		s.notifier.Success(msgRemovedFromCart)
		return
	}
}

// UpdateQuantity adds delta to the item's quantity, applying the change only
// when the result stays in (0, stock]. Out-of-bounds results are silently
// ignored — an intentional soft boundary, not an error, and deliberately
// quieter than AddToCart's warnings.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID int64, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != productID {
			continue
		}
		next := s.items[i].Quantity + delta
		if next <= 0 || next > s.items[i].Stock {
			return
		}
		s.items[i].Quantity = next
		s.persistCart(ctx)
		return
	}
}

// ClearCart empties the cart and hides the panel. The durable cart record is
// erased; the visibility record is set to "false" rather than erased.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []domain.CartItem{}
	s.visible = false
	if err := s.storage.Delete(ctx, domain.KeyCart); err != nil {
		level.Error(s.logger).Log("msg", "erase persisted cart", "err", err)
	}
	s.persistVisible(ctx)
}

// ToggleCart flips the panel visibility and persists the flag.
func (s *CartStore) ToggleCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = !s.visible
	s.persistVisible(ctx)
}

// CloseCart hides the panel and persists the flag.
func (s *CartStore) CloseCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
	s.persistVisible(ctx)
}

// TotalAmount recomputes sum(price*quantity) over the current items.
func (s *CartStore) TotalAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Items returns a copy of the cart line items in insertion order.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Visible reports whether the cart panel is shown.
func (s *CartStore) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// persistCart writes the items through to storage. Failures are logged, not
// surfaced: the in-memory cart stays authoritative and the last successful
// write wins on the next start. Callers hold s.mu.
func (s *CartStore) persistCart(ctx context.Context) {
	if err := helpers.SetJSON(ctx, s.storage, domain.KeyCart, s.items); err != nil {
		level.Error(s.logger).Log("msg", "persist cart", "err", err)
	}
}

// persistVisible writes the visibility flag through to storage. Callers hold
// s.mu.
func (s *CartStore) persistVisible(ctx context.Context) {
	if err := helpers.SetBool(ctx, s.storage, domain.KeyCartVisible, s.visible); err != nil {
		level.Error(s.logger).Log("msg", "persist cart visibility", "err", err)
	}
}
