package stores

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
)

// Dashboard holds the admin analytics snapshots.
type Dashboard struct {
	client *api.Client

	mu      sync.Mutex
	stats   *models.DashboardStats
	sales   []models.SalesPoint
	loading bool
	err     string
}

func NewDashboard(client *api.Client) *Dashboard {
	return &Dashboard{client: client}
}

func (d *Dashboard) Stats() *models.DashboardStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stats == nil {
		return nil
	}
	s := *d.stats
	return &s
}

func (d *Dashboard) Sales() []models.SalesPoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.SalesPoint, len(d.sales))
	copy(out, d.sales)
	return out
}

func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *Dashboard) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Dashboard) FetchStats(ctx context.Context) error {
	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.loading = false
		d.mu.Unlock()
	}()

	var res api.Response[models.DashboardStats]
	if err := d.client.Get(ctx, "/dashboard/stats", nil, &res); err != nil {
		d.mu.Lock()
		d.err = api.Humanize(err)
		d.mu.Unlock()
		return fmt.Errorf("fetch dashboard stats: %w", err)
	}

	d.mu.Lock()
	stats := res.Data
	d.stats = &stats
	d.mu.Unlock()
	return nil
}

// FetchSales loads the revenue series, optionally bounded by a date range
// (inclusive, YYYY-MM-DD).
func (d *Dashboard) FetchSales(ctx context.Context, from, to string) error {
	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.loading = false
		d.mu.Unlock()
	}()

	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}

	var res api.Response[[]models.SalesPoint]
	if err := d.client.Get(ctx, "/dashboard/sales", query, &res); err != nil {
		d.mu.Lock()
		d.err = api.Humanize(err)
		d.mu.Unlock()
		return fmt.Errorf("fetch sales analytics: %w", err)
	}

	d.mu.Lock()
	d.sales = res.Data
	d.mu.Unlock()
	return nil
}

// ClearStats drops the cached snapshots.
func (d *Dashboard) ClearStats() {
	d.mu.Lock()
	d.stats = nil
	d.sales = nil
	d.err = ""
	d.mu.Unlock()
}
