package stores

import (
	"context"
	"fmt"
	"io"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// Storage is the back-office file management store.
type Storage struct {
	collection[models.StorageFile]
	client *api.Client
	notes  *notify.Notifier

	uploading bool
}

func NewStorage(client *api.Client, notes *notify.Notifier) *Storage {
	s := &Storage{client: client, notes: notes}
	s.id = func(f models.StorageFile) int { return f.ID }
	return s
}

func (s *Storage) Fetch(ctx context.Context, filters models.StorageFilters) error {
	s.begin()
	defer s.end()

	var res api.Response[api.Page[models.StorageFile]]
	if err := s.client.Get(ctx, "/storage", filters.Query(), &res); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("fetch storage files: %w", err)
	}
	s.setPage(res.Data.Data, res.Data.Pagination)
	return nil
}

func (s *Storage) FetchOne(ctx context.Context, id int) (*models.StorageFile, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.StorageFile]
	if err := s.client.Get(ctx, fmt.Sprintf("/storage/%d", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("fetch storage file %d: %w", id, err)
	}
	s.setCurrent(res.Data)
	return &res.Data, nil
}

func (s *Storage) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// Upload sends a file as multipart form data with an optional category tag.
func (s *Storage) Upload(ctx context.Context, fileName string, file io.Reader, category string) (*models.StorageFile, error) {
	s.mu.Lock()
	s.uploading = true
	s.err = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
	}()

	fields := map[string]string{}
	if category != "" {
		fields["category"] = category
	}
	var res api.Response[models.StorageFile]
	if err := s.client.PostMultipart(ctx, "/storage", fields, "file", fileName, file, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("upload file: %w", err)
	}
	s.prepend(res.Data)
	s.notes.Success("File uploaded successfully")
	return &res.Data, nil
}

func (s *Storage) Delete(ctx context.Context, id int) error {
	s.begin()
	defer s.end()

	if err := s.client.Delete(ctx, fmt.Sprintf("/storage/%d", id), nil); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("delete storage file %d: %w", id, err)
	}
	s.drop(id)
	s.notes.Success("File deleted successfully")
	return nil
}

func (s *Storage) Restore(ctx context.Context, id int) (*models.StorageFile, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.StorageFile]
	if err := s.client.Post(ctx, fmt.Sprintf("/storage/%d/restore", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("restore storage file %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("File restored successfully")
	return &res.Data, nil
}
