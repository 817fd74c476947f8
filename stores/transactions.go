package stores

import (
	"context"
	"fmt"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
)

// Transactions is the back-office transaction store. Unlike the customer
// Orders store it sees every user's transactions and drives status
// transitions forward.
type Transactions struct {
	collection[models.Transaction]
	client *api.Client
	notes  *notify.Notifier
}

func NewTransactions(client *api.Client, notes *notify.Notifier) *Transactions {
	s := &Transactions{client: client, notes: notes}
	s.id = func(t models.Transaction) int { return t.ID }
	return s
}

func (s *Transactions) Fetch(ctx context.Context, filters models.TransactionFilters) error {
	s.begin()
	defer s.end()

	var res api.Response[api.Page[models.Transaction]]
	if err := s.client.Get(ctx, "/transactions", filters.Query(), &res); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("fetch transactions: %w", err)
	}
	s.setPage(res.Data.Data, res.Data.Pagination)
	return nil
}

func (s *Transactions) FetchOne(ctx context.Context, id int) (*models.Transaction, error) {
	s.begin()
	defer s.end()

	var res api.Response[models.Transaction]
	if err := s.client.Get(ctx, fmt.Sprintf("/transactions/%d", id), nil, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("fetch transaction %d: %w", id, err)
	}
	s.setCurrent(res.Data)
	return &res.Data, nil
}

// UpdateStatus moves a transaction forward along the allowed transition map.
// The check here only saves a doomed round-trip; the server enforces the
// same rules.
func (s *Transactions) UpdateStatus(ctx context.Context, id int, status models.TransactionStatus, notes string) (*models.Transaction, error) {
	current := s.find(id)
	if current != nil && !models.CanTransition(current.Status, status) {
		return nil, &api.Error{
			Status:  422,
			Message: fmt.Sprintf("Cannot change status from %s to %s", current.Status, status),
		}
	}

	s.begin()
	defer s.end()

	req := models.UpdateTransactionRequest{Status: status, Notes: notes}
	var res api.Response[models.Transaction]
	if err := s.client.Put(ctx, fmt.Sprintf("/transactions/%d", id), req, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("update transaction %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success(fmt.Sprintf("Transaction status updated to %s", status))
	return &res.Data, nil
}

func (s *Transactions) Cancel(ctx context.Context, id int, reason string) (*models.Transaction, error) {
	s.begin()
	defer s.end()

	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var res api.Response[models.Transaction]
	if err := s.client.Post(ctx, fmt.Sprintf("/transactions/%d/cancel", id), body, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("cancel transaction %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("Transaction cancelled")
	return &res.Data, nil
}

func (s *Transactions) Refund(ctx context.Context, id int, reason string) (*models.Transaction, error) {
	s.begin()
	defer s.end()

	body := map[string]string{}
	if reason != "" {
		body["reason"] = reason
	}
	var res api.Response[models.Transaction]
	if err := s.client.Post(ctx, fmt.Sprintf("/transactions/%d/refund", id), body, &res); err != nil {
		s.fail(api.Humanize(err))
		return nil, fmt.Errorf("refund transaction %d: %w", id, err)
	}
	s.patch(res.Data)
	s.notes.Success("Transaction refunded")
	return &res.Data, nil
}

func (s *Transactions) Delete(ctx context.Context, id int) error {
	s.begin()
	defer s.end()

	if err := s.client.Delete(ctx, fmt.Sprintf("/transactions/%d", id), nil); err != nil {
		s.fail(api.Humanize(err))
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	s.drop(id)
	s.notes.Success("Transaction deleted")
	return nil
}

func (s *Transactions) find(id int) *models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			t := s.items[i]
			return &t
		}
	}
	if s.current != nil && s.current.ID == id {
		t := *s.current
		return &t
	}
	return nil
}
