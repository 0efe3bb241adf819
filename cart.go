package storefront

import (
	"context"
	"sync"
	"time"
)

// CartLine is one product entry in the cart with an aggregated quantity.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"image_ref,omitempty"`
}

// LineTotal is the line's contribution to the cart subtotal.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartRepository persists cart lines between runs. Implementations keep the
// stored order aligned with the in-memory insertion order via position.
type CartRepository interface {
	Load(ctx context.Context) ([]CartLine, error)
	SaveLine(ctx context.Context, line CartLine, position int) error
	DeleteLine(ctx context.Context, productID int64) error
	DeleteAll(ctx context.Context) error
}

// CartStore owns the shopping cart. All mutations are synchronous and keep
// the one-line-per-product invariant: adds merge quantities, a quantity
// update to zero removes the line, and totals are always recomputed from the
// current lines. The cart is independent of the session; anonymous visitors
// may hold one.
//
// Persistence is best effort, like browser storage: a failing repository
// never blocks a mutation, it only logs.
type CartStore struct {
	mu           sync.Mutex
	lines        []CartLine
	repo         CartRepository
	logger       Logger
	activitySink ActivitySink
}

type CartOption func(*CartStore)

// WithCartRepository persists the cart through repo.
func WithCartRepository(repo CartRepository) CartOption {
	return func(c *CartStore) {
		c.repo = repo
	}
}

func WithCartLogger(logger Logger) CartOption {
	return func(c *CartStore) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCartActivitySink emits cart lifecycle events to sink.
func WithCartActivitySink(sink ActivitySink) CartOption {
	return func(c *CartStore) {
		c.activitySink = normalizeActivitySink(sink)
	}
}

// NewCartStore returns an empty cart.
func NewCartStore(opts ...CartOption) *CartStore {
	c := &CartStore{
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Restore replaces the in-memory lines with the persisted ones. Call once at
// startup when a repository is configured.
func (c *CartStore) Restore(ctx context.Context) error {
	if c.repo == nil {
		return nil
	}

	lines, err := c.repo.Load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = lines
	return nil
}

// AddItem merges qty into an existing line for the product or appends a new
// line at the end. A non-positive qty is a caller error.
func (c *CartStore) AddItem(ctx context.Context, product Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity.WithMetadata(map[string]any{
			"product_id": product.ID,
			"quantity":   qty,
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += qty
			c.persistLine(ctx, c.lines[i], i)
			return nil
		}
	}

	line := CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice(),
		Quantity:  qty,
	}
	if len(product.ImageURLs) > 0 {
		line.ImageRef = product.ImageURLs[0]
	}

	c.lines = append(c.lines, line)
	c.persistLine(ctx, line, len(c.lines)-1)
	return nil
}

// UpdateQuantity sets the line's quantity, removing the line entirely when
// newQty drops to zero or below. Unknown products are a no-op.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID int64, newQty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if newQty <= 0 {
		c.removeLine(ctx, productID)
		return nil
	}

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = newQty
			c.persistLine(ctx, c.lines[i], i)
			return nil
		}
	}

	return nil
}

// RemoveItem removes the line if present; no-op otherwise.
func (c *CartStore) RemoveItem(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLine(ctx, productID)
	return nil
}

// Clear empties the cart atomically. Invoked after checkout success or an
// explicit reset.
func (c *CartStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	cleared := len(c.lines)
	c.lines = nil
	if c.repo != nil {
		if err := c.repo.DeleteAll(ctx); err != nil {
			c.logger.Warn("cart clear persistence failed", "error", err)
		}
	}
	c.mu.Unlock()

	c.emitEvent(ctx, ActivityEventCartCleared, map[string]any{
		"lines": cleared,
	})
	return nil
}

// Lines returns a copy of the lines in insertion order.
func (c *CartStore) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLines()
}

// IsEmpty reports whether the cart holds no lines.
func (c *CartStore) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// ItemCount is the sum of quantities across lines, recomputed on every call.
func (c *CartStore) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Subtotal is the sum of line totals, recomputed on every call.
func (c *CartStore) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Snapshot returns the lines by value for an order submission. Later cart
// mutations cannot touch a snapshot already handed to checkout.
func (c *CartStore) Snapshot() []CartLine {
	return c.Lines()
}

// removeLine must run under c.mu.
func (c *CartStore) removeLine(ctx context.Context, productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			if c.repo != nil {
				if err := c.repo.DeleteLine(ctx, productID); err != nil {
					c.logger.Warn("cart line delete persistence failed", "product_id", productID, "error", err)
				}
			}
			return
		}
	}
}

// persistLine must run under c.mu.
func (c *CartStore) persistLine(ctx context.Context, line CartLine, position int) {
	if c.repo == nil {
		return
	}
	if err := c.repo.SaveLine(ctx, line, position); err != nil {
		c.logger.Warn("cart line persistence failed", "product_id", line.ProductID, "error", err)
	}
}

func (c *CartStore) copyLines() []CartLine {
	if len(c.lines) == 0 {
		return []CartLine{}
	}
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *CartStore) emitEvent(ctx context.Context, eventType ActivityEventType, metadata map[string]any) {
	sink := normalizeActivitySink(c.activitySink)
	event := ActivityEvent{
		EventType:  eventType,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}
	if err := sink.Record(ctx, event); err != nil {
		c.logger.Warn("activity sink record error: %v", err)
	}
}
