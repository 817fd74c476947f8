package stores

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/logger"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// Orders is the customer-facing order store: the authenticated user's order
// history plus the checkout flow that turns a validated cart into a
// transaction.
type Orders struct {
	client *api.Client
	cart   *Cart
	notes  *notify.Notifier
	nav    Navigator

	mu         sync.Mutex
	orders     []models.Transaction
	current    *models.Transaction
	pagination api.Pagination
	loading    bool
	creating   bool
	err        string
}

func NewOrders(client *api.Client, cart *Cart, notes *notify.Notifier, nav Navigator) *Orders {
	return &Orders{client: client, cart: cart, notes: notes, nav: nav}
}

// List returns a copy of the loaded orders.
func (o *Orders) List() []models.Transaction {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.Transaction, len(o.orders))
	copy(out, o.orders)
	return out
}

// Current returns the most recently fetched or created order.
func (o *Orders) Current() *models.Transaction {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return nil
	}
	t := *o.current
	return &t
}

func (o *Orders) Pagination() api.Pagination {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pagination
}

func (o *Orders) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

func (o *Orders) Creating() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.creating
}

func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

func (o *Orders) setErr(msg string) {
	o.mu.Lock()
	o.err = msg
	o.mu.Unlock()
}

// Fetch loads a page of the user's own orders. The pseudo status "all" is
// stripped from the query by OrderFilters.
func (o *Orders) Fetch(ctx context.Context, filters models.OrderFilters) error {
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.loading = false
		o.mu.Unlock()
	}()

	var res api.Response[api.Page[models.Transaction]]
	if err := o.client.Get(ctx, "/my-transactions", filters.Query(), &res); err != nil {
		o.setErr(api.Humanize(err))
		return fmt.Errorf("fetch orders: %w", err)
	}

	o.mu.Lock()
	o.orders = res.Data.Data
	o.pagination = res.Data.Pagination
	o.mu.Unlock()
	return nil
}

// FetchOne loads a single order.
func (o *Orders) FetchOne(ctx context.Context, id int) (*models.Transaction, error) {
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.loading = false
		o.mu.Unlock()
	}()

	var res api.Response[models.Transaction]
	if err := o.client.Get(ctx, fmt.Sprintf("/transactions/%d", id), nil, &res); err != nil {
		o.setErr(api.Humanize(err))
		return nil, fmt.Errorf("fetch order %d: %w", id, err)
	}

	o.mu.Lock()
	t := res.Data
	o.current = &t
	o.mu.Unlock()
	return &t, nil
}

// Create is the checkout script. Ordering is load-bearing: stock validation
// must pass before the order is submitted, and the cart is cleared only after
// submission succeeds. Every failure point is pre-commit, so no compensation
// is needed; the cart stays intact on any error.
func (o *Orders) Create(ctx context.Context, notes string) (*models.Transaction, error) {
	o.mu.Lock()
	o.creating = true
	o.err = ""
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.creating = false
		o.mu.Unlock()
	}()

	items := o.cart.Items()
	if len(items) == 0 {
		o.setErr("Your cart is empty")
		return nil, ErrEmptyCart
	}

	if _, err := o.cart.ValidateStock(ctx); err != nil {
		o.setErr(api.Humanize(err))
		return nil, fmt.Errorf("create order: %w", err)
	}
	if o.cart.HasStockIssues() {
		o.setErr("Some items in your cart are no longer available")
		o.notes.Error("Some items in your cart are no longer available")
		return nil, ErrStockIssues
	}

	o.notes.Loading("Placing your order...")

	payload := models.CreateTransactionRequest{
		Items:  make([]models.CreateTransactionItem, 0, len(items)),
		Notes:  notes,
		Status: models.StatusPending,
	}
	for _, item := range items {
		payload.Items = append(payload.Items, models.CreateTransactionItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price.Float64(),
		})
	}

	var res api.Response[models.Transaction]
	if err := o.client.Post(ctx, "/transactions", payload, &res); err != nil {
		o.setErr(api.Humanize(err))
		o.notes.Error(api.Humanize(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	// Order is committed; cart cleanup failures must not undo that.
	if err := o.cart.Clear(ctx); err != nil {
		logger.Warn(ctx, "cart clear after checkout failed", zap.Error(err))
	}
	o.cart.ResetStockValidation()

	order := res.Data
	o.mu.Lock()
	o.orders = append([]models.Transaction{order}, o.orders...)
	o.current = &order
	o.mu.Unlock()

	o.notes.Success("Order created successfully!")
	if o.nav != nil {
		o.nav.Push(fmt.Sprintf("/orders/%d?success=true", order.ID))
	}
	return &order, nil
}
