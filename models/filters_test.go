package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderFiltersQuery(t *testing.T) {
	t.Run("status all is stripped", func(t *testing.T) {
		q := OrderFilters{Status: StatusAll, SortBy: "created_at"}.Query()
		assert.False(t, q.Has("status"))
		assert.Equal(t, "created_at", q.Get("sort_by"))
	})

	t.Run("empty status is stripped", func(t *testing.T) {
		q := OrderFilters{}.Query()
		assert.False(t, q.Has("status"))
	})

	t.Run("concrete status is sent", func(t *testing.T) {
		q := OrderFilters{Status: string(StatusPending), Page: 2, PerPage: 10}.Query()
		assert.Equal(t, "pending", q.Get("status"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("per_page"))
	})
}

func TestTransactionFiltersQuery(t *testing.T) {
	q := TransactionFilters{Status: StatusAll, CustomerSearch: "budi"}.Query()
	assert.False(t, q.Has("status"))
	assert.Equal(t, "budi", q.Get("customer_search"))

	q = TransactionFilters{Status: string(StatusShipped)}.Query()
	assert.Equal(t, "shipped", q.Get("status"))
}

func TestProductFiltersQuery(t *testing.T) {
	q := ProductFilters{Search: "kopi", CategoryID: 3, MinPrice: 1000}.Query()
	assert.Equal(t, "kopi", q.Get("search"))
	assert.Equal(t, "3", q.Get("category_id"))
	assert.Equal(t, "1000", q.Get("min_price"))
	assert.False(t, q.Has("max_price"))
}
