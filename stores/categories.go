package stores

import (
	"context"
	"fmt"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/validation"
)

// Categories is the category collection, shared by catalog and back-office.
type Categories struct {
	collection[models.Category]
	client *api.Client
	notes  *notify.Notifier
}

func NewCategories(client *api.Client, notes *notify.Notifier) *Categories {
	s := &Categories{client: client, notes: notes}
	s.id = func(c models.Category) int { return c.ID }
	return s
}

func (s *Categories) Fetch(ctx context.Context, filters models.CategoryFilters) error {
	s.begin()
	defer s.end()

	var res api.Response[api.Page[models.Category]]
	if err := s.client.Get(ctx, "/categories", filters.Query(), &res); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("fetch categories: %w", err)
	}
	s.setPage(res.Data.Data, res.Data.Pagination)
	return nil
}

func (s *Categories) FetchOne(ctx context.Context, id int) (*models.Category, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Category]
	if err := s.client.Get(ctx, fmt.Sprintf("/categories/%d", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("fetch category %d: %w", id, err)
	}
	s.setCurrent(res.Data)
	return &res.Data, nil
}

func (s *Categories) Create(ctx context.Context, form validation.CategoryForm) (*models.Category, error) {
	if fields := validation.Check(form); fields != nil {
		return nil, &api.Error{Status: 422, Message: "Validation failed", Fields: fields}
	}

	s.begin()
	defer s.end()

	req := models.CreateCategoryRequest{Name: form.Name, Description: form.Description}
	var res api.Response[models.Category]
	if err := s.client.Post(ctx, "/categories", req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.prepend(res.Data)
	s.notes.Success("Category created")
	return &res.Data, nil
}

func (s *Categories) Update(ctx context.Context, id int, req models.UpdateCategoryRequest) (*models.Category, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Category]
	if err := s.client.Put(ctx, fmt.Sprintf("/categories/%d", id), req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("Category updated")
	return &res.Data, nil
}

func (s *Categories) Delete(ctx context.Context, id int) error {
	s.begin()
	defer s.end()

	if err := s.client.Delete(ctx, fmt.Sprintf("/categories/%d", id), nil); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	s.drop(id)
	s.notes.Success("Category deleted")
	return nil
}

func (s *Categories) Restore(ctx context.Context, id int) (*models.Category, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Category]
	if err := s.client.Post(ctx, fmt.Sprintf("/categories/%d/restore", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("restore category %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("Category restored")
	return &res.Data, nil
}
