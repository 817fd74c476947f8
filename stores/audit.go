package stores

import (
	"context"
	"fmt"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// Audit is the read-only audit trail store.
type Audit struct {
	collection[models.AuditEntry]
	client *api.Client
	notes  *notify.Notifier

	exporting bool
}

func NewAudit(client *api.Client, notes *notify.Notifier) *Audit {
	s := &Audit{client: client, notes: notes}
	s.id = func(e models.AuditEntry) int { return e.ID }
	return s
}

func (s *Audit) Fetch(ctx context.Context, filters models.AuditFilters) error {
	s.begin()
	defer s.end()

	var res api.Response[api.Page[models.AuditEntry]]
	if err := s.client.Get(ctx, "/audit-trails", filters.Query(), &res); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("fetch audit trail: %w", err)
	}
	s.setPage(res.Data.Data, res.Data.Pagination)
	return nil
}

func (s *Audit) FetchOne(ctx context.Context, id int) (*models.AuditEntry, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.AuditEntry]
	if err := s.client.Get(ctx, fmt.Sprintf("/audit-trails/%d", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("fetch audit entry %d: %w", id, err)
	}
	s.setCurrent(res.Data)
	return &res.Data, nil
}

func (s *Audit) Exporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporting
}

// Export downloads the filtered trail as CSV bytes; persisting them is the
// caller's business.
func (s *Audit) Export(ctx context.Context, filters models.AuditFilters) ([]byte, error) {
	s.mu.Lock()
	s.exporting = true
	s.err = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	raw, err := s.client.GetRaw(ctx, "/audit-trails/export", filters.Query())
	if err != nil {
		s.fail(api.Humanize(err))
		s.notes.Errorf("Failed to export audit trail: %s", api.Humanize(err))
		return nil, fmt.Errorf("export audit trail: %w", err)
	}
	s.notes.Success("Audit trail exported")
	return raw, nil
}
