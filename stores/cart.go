package stores

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/format"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/logger"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// Cart caches the authenticated user's cart and keeps it synchronized with
// the server on every mutation. Success patches the one affected line from
// the server response; transport failure falls back to a full resync rather
// than attempting partial repair.
type Cart struct {
	client *api.Client
	auth   Session
	notes  *notify.Notifier

	mu             sync.Mutex
	items          []models.CartItem
	total          models.Money
	itemCount      int
	stockReport    []models.StockValidationItem
	hasStockIssues bool
	loading        bool
	initialized    bool
	err            string
}

func NewCart(client *api.Client, auth Session, notes *notify.Notifier) *Cart {
	return &Cart{client: client, auth: auth, notes: notes}
}

// Items returns a copy of the current cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Count returns the server-reported unit count across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemCount
}

// ItemByProduct finds the line holding the given product, or nil.
func (c *Cart) ItemByProduct(productID int) *models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			item := c.items[i]
			return &item
		}
	}
	return nil
}

// Total is the cart total. The server-computed summary wins; without one the
// line totals are summed locally.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total != "" {
		return c.total.Float64()
	}
	var sum float64
	for _, item := range c.items {
		if item.TotalPrice != "" {
			sum += item.TotalPrice.Float64()
			continue
		}
		sum += float64(item.Quantity) * item.Product.Price.Float64()
	}
	return sum
}

// FormattedTotal renders the total as rupiah, e.g. "Rp 100.000".
func (c *Cart) FormattedTotal() string {
	return format.Rupiah(c.Total())
}

func (c *Cart) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *Cart) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Cart) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// HasStockIssues reports whether the last stock validation flagged any line.
func (c *Cart) HasStockIssues() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasStockIssues
}

// StockReport returns a copy of the last stock validation snapshot.
func (c *Cart) StockReport() []models.StockValidationItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.StockValidationItem, len(c.stockReport))
	copy(out, c.stockReport)
	return out
}

func (c *Cart) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Cart) setErr(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
}

// Fetch replaces local state wholesale with the server's cart. For an
// unauthenticated session it empties local state without a request.
func (c *Cart) Fetch(ctx context.Context) error {
	if !c.auth.IsAuthenticated() {
		c.mu.Lock()
		c.items = nil
		c.total = ""
		c.itemCount = 0
		c.initialized = true
		c.mu.Unlock()
		return nil
	}

	c.setLoading(true)
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.initialized = true
		c.mu.Unlock()
	}()
	c.setErr("")

	var res api.Response[models.CartSummary]
	if err := c.client.Get(ctx, "/cart", nil, &res); err != nil {
		c.setErr(api.Humanize(err))
		return fmt.Errorf("fetch cart: %w", err)
	}

	c.mu.Lock()
	c.items = res.Data.Data
	c.total = res.Data.Total
	c.itemCount = res.Data.ItemCount
	c.mu.Unlock()
	return nil
}

// resync recovers from a failed mutation by re-pulling the whole cart.
// Its own failure is logged, not surfaced; the original error wins.
func (c *Cart) resync(ctx context.Context) {
	if err := c.Fetch(ctx); err != nil {
		logger.Warn(ctx, "cart resync failed", zap.Error(err))
	}
}

// Add posts a quantity delta for the product. The server returns the merged
// line: an existing line for the same product is replaced, otherwise the new
// line is appended. A quantity of zero or less defaults to one.
func (c *Cart) Add(ctx context.Context, productID, quantity int) error {
	if !c.auth.IsAuthenticated() {
		return api.ErrAuthRequired
	}
	if quantity < 1 {
		quantity = 1
	}

	c.setLoading(true)
	defer c.setLoading(false)
	c.setErr("")

	req := models.AddToCartRequest{ProductID: productID, Quantity: quantity}
	var res api.Response[models.CartItem]
	if err := c.client.Post(ctx, "/cart", req, &res); err != nil {
		// Resync first: Fetch resets the error string, and the mutation
		// failure must survive the recovery pull.
		c.resync(ctx)
		c.setErr(api.Humanize(err))
		return fmt.Errorf("add to cart: %w", err)
	}

	c.mu.Lock()
	replaced := false
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i] = res.Data
			replaced = true
			break
		}
	}
	if !replaced {
		c.items = append(c.items, res.Data)
	}
	c.recountLocked()
	c.mu.Unlock()
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or negative quantities remove
// the line instead; a line never stays in the cart at quantity zero.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	if quantity <= 0 {
		return c.Remove(ctx, itemID)
	}
	if !c.auth.IsAuthenticated() {
		return api.ErrAuthRequired
	}

	c.setLoading(true)
	defer c.setLoading(false)
	c.setErr("")

	req := models.UpdateCartItemRequest{Quantity: quantity}
	var res api.Response[models.CartItem]
	if err := c.client.Put(ctx, fmt.Sprintf("/cart/%d", itemID), req, &res); err != nil {
		c.resync(ctx)
		c.setErr(api.Humanize(err))
		return fmt.Errorf("update cart item: %w", err)
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i] = res.Data
			break
		}
	}
	c.recountLocked()
	c.mu.Unlock()
	return nil
}

// Remove deletes one line.
func (c *Cart) Remove(ctx context.Context, itemID int) error {
	if !c.auth.IsAuthenticated() {
		return api.ErrAuthRequired
	}

	c.setLoading(true)
	defer c.setLoading(false)
	c.setErr("")

	if err := c.client.Delete(ctx, fmt.Sprintf("/cart/%d", itemID), nil); err != nil {
		c.resync(ctx)
		c.setErr(api.Humanize(err))
		return fmt.Errorf("remove cart item: %w", err)
	}

	c.mu.Lock()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.recountLocked()
	c.mu.Unlock()
	return nil
}

// Clear empties the cart server-side and locally.
func (c *Cart) Clear(ctx context.Context) error {
	if !c.auth.IsAuthenticated() {
		return api.ErrAuthRequired
	}

	c.setLoading(true)
	defer c.setLoading(false)
	c.setErr("")

	if err := c.client.Delete(ctx, "/cart", nil); err != nil {
		c.resync(ctx)
		c.setErr(api.Humanize(err))
		return fmt.Errorf("clear cart: %w", err)
	}

	c.mu.Lock()
	c.items = nil
	c.total = ""
	c.itemCount = 0
	c.mu.Unlock()
	return nil
}

// ValidateStock pulls the server-computed per-line stock snapshot and flags
// the cart when any line asks for more than is available. A gate before
// checkout, not a guarantee: the server re-validates on order creation.
func (c *Cart) ValidateStock(ctx context.Context) ([]models.StockValidationItem, error) {
	if !c.auth.IsAuthenticated() {
		return nil, api.ErrAuthRequired
	}

	var res api.Response[[]models.StockValidationItem]
	if err := c.client.Get(ctx, "/cart/validate-stock", nil, &res); err != nil {
		c.setErr(api.Humanize(err))
		return nil, fmt.Errorf("validate stock: %w", err)
	}

	flagged := false
	for _, item := range res.Data {
		if item.Oversold() {
			flagged = true
			break
		}
	}

	c.mu.Lock()
	c.stockReport = res.Data
	c.hasStockIssues = flagged
	c.mu.Unlock()
	return res.Data, nil
}

// ResetStockValidation drops the last stock report, e.g. after checkout.
func (c *Cart) ResetStockValidation() {
	c.mu.Lock()
	c.stockReport = nil
	c.hasStockIssues = false
	c.mu.Unlock()
}

// recountLocked refreshes the local unit count and drops the stale server
// total after a single-line patch. Callers hold c.mu.
func (c *Cart) recountLocked() {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	c.itemCount = n
	c.total = ""
}
