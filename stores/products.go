package stores

import (
	"context"
	"fmt"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/validation"
)

// Products serves both the storefront catalog and back-office product
// management; they share the same endpoints, with mutations gated server-side
// by role.
type Products struct {
	collection[models.Product]
	client *api.Client
	notes  *notify.Notifier
}

func NewProducts(client *api.Client, notes *notify.Notifier) *Products {
	s := &Products{client: client, notes: notes}
	s.id = func(p models.Product) int { return p.ID }
	return s
}

func (s *Products) Fetch(ctx context.Context, filters models.ProductFilters) error {
	s.begin()
	defer s.end()

	var res api.Response[api.Page[models.Product]]
	if err := s.client.Get(ctx, "/products", filters.Query(), &res); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("fetch products: %w", err)
	}
	s.setPage(res.Data.Data, res.Data.Pagination)
	return nil
}

func (s *Products) FetchOne(ctx context.Context, id int) (*models.Product, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Product]
	if err := s.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	s.setCurrent(res.Data)
	return &res.Data, nil
}

func (s *Products) Create(ctx context.Context, form validation.ProductForm) (*models.Product, error) {
	if fields := validation.Check(form); fields != nil {
		return nil, &api.Error{Status: 422, Message: "Validation failed", Fields: fields}
	}

	s.begin()
	defer s.end()

	req := models.CreateProductRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Stock:       form.Stock,
		CategoryID:  form.CategoryID,
	}
	var res api.Response[models.Product]
	if err := s.client.Post(ctx, "/products", req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.prepend(res.Data)
	s.notes.Success("Product created")
	return &res.Data, nil
}

func (s *Products) Update(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Product]
	if err := s.client.Put(ctx, fmt.Sprintf("/products/%d", id), req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("Product updated")
	return &res.Data, nil
}

func (s *Products) Delete(ctx context.Context, id int) error {
	s.begin()
	defer s.end()

	if err := s.client.Delete(ctx, fmt.Sprintf("/products/%d", id), nil); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.drop(id)
	s.notes.Success("Product deleted")
	return nil
}

func (s *Products) Restore(ctx context.Context, id int) (*models.Product, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Product]
	if err := s.client.Post(ctx, fmt.Sprintf("/products/%d/restore", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("restore product %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("Product restored")
	return &res.Data, nil
}

// UpdateStockLocal patches a product's stock in local state only, e.g. after
// an order cancellation frees inventory. No request is made.
func (s *Products) UpdateStockLocal(productID, stock int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Stock = stock
			break
		}
	}
	if s.current != nil && s.current.ID == productID {
		p := *s.current
		p.Stock = stock
		s.current = &p
	}
	s.mu.Unlock()
}
