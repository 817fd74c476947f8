package stores

import (
	"context"
	"fmt"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// Users is the back-office user management store.
type Users struct {
	collection[models.User]
	client *api.Client
	notes  *notify.Notifier
}

func NewUsers(client *api.Client, notes *notify.Notifier) *Users {
	s := &Users{client: client, notes: notes}
	s.id = func(u models.User) int { return u.ID }
	return s
}

func (s *Users) Fetch(ctx context.Context, filters models.UserFilters) error {
	s.begin()
	defer s.end()

	var res api.Response[api.Page[models.User]]
	if err := s.client.Get(ctx, "/users", filters.Query(), &res); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("fetch users: %w", err)
	}
	s.setPage(res.Data.Data, res.Data.Pagination)
	return nil
}

func (s *Users) FetchOne(ctx context.Context, id int) (*models.User, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.User]
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("fetch user %d: %w", id, err)
	}
	s.setCurrent(res.Data)
	return &res.Data, nil
}

func (s *Users) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.User]
	if err := s.client.Post(ctx, "/users", req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.prepend(res.Data)
	s.notes.Success("User created")
	return &res.Data, nil
}

func (s *Users) Update(ctx context.Context, id int, req models.UpdateUserRequest) (*models.User, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.User]
	if err := s.client.Put(ctx, fmt.Sprintf("/users/%d", id), req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("User updated")
	return &res.Data, nil
}

// Delete soft-deletes on the server, then drops the local entry.
func (s *Users) Delete(ctx context.Context, id int) error {
	s.begin()
	defer s.end()

	if err := s.client.Delete(ctx, fmt.Sprintf("/users/%d", id), nil); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.drop(id)
	s.notes.Success("User deleted")
	return nil
}

func (s *Users) Restore(ctx context.Context, id int) (*models.User, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.User]
	if err := s.client.Post(ctx, fmt.Sprintf("/users/%d/restore", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("restore user %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("User restored")
	return &res.Data, nil
}
