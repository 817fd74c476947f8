package models

import (
	"net/url"
	"strconv"
)

// StatusAll is the UI-only pseudo filter meaning "no status filter". It is
// stripped before the request is built and never sent on the wire.
const StatusAll = "all"

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setStr(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

type OrderFilters struct {
	Status    string // TransactionStatus or StatusAll
	SortBy    string // created_at | total_amount
	SortOrder string // asc | desc
	Page      int
	PerPage   int
}

func (f OrderFilters) Query() url.Values {
	v := url.Values{}
	if f.Status != "" && f.Status != StatusAll {
		v.Set("status", f.Status)
	}
	setStr(v, "sort_by", f.SortBy)
	setStr(v, "sort_order", f.SortOrder)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

type ProductFilters struct {
	Search     string
	CategoryID int
	Status     string // available | unavailable
	MinPrice   float64
	MaxPrice   float64
	Sort       string // name | price | created_at
	Order      string // asc | desc
	Page       int
	PerPage    int
	Trashed    bool
}

func (f ProductFilters) Query() url.Values {
	v := url.Values{}
	setStr(v, "search", f.Search)
	setInt(v, "category_id", f.CategoryID)
	setStr(v, "status", f.Status)
	if f.MinPrice > 0 {
		v.Set("min_price", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		v.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	setStr(v, "sort", f.Sort)
	setStr(v, "order", f.Order)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	if f.Trashed {
		v.Set("trashed", "1")
	}
	return v
}

type CategoryFilters struct {
	Search  string
	Page    int
	PerPage int
	Trashed bool
}

func (f CategoryFilters) Query() url.Values {
	v := url.Values{}
	setStr(v, "search", f.Search)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	if f.Trashed {
		v.Set("trashed", "1")
	}
	return v
}

type UserFilters struct {
	Search  string
	Role    UserRole
	Page    int
	PerPage int
	Trashed bool
}

func (f UserFilters) Query() url.Values {
	v := url.Values{}
	setStr(v, "search", f.Search)
	setStr(v, "role", string(f.Role))
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	if f.Trashed {
		v.Set("trashed", "1")
	}
	return v
}

type TransactionFilters struct {
	Status         string // TransactionStatus or StatusAll
	CustomerSearch string
	DateFrom       string
	DateTo         string
	MinAmount      float64
	MaxAmount      float64
	SortBy         string
	SortOrder      string
	Page           int
	PerPage        int
}

func (f TransactionFilters) Query() url.Values {
	v := url.Values{}
	if f.Status != "" && f.Status != StatusAll {
		v.Set("status", f.Status)
	}
	setStr(v, "customer_search", f.CustomerSearch)
	setStr(v, "date_from", f.DateFrom)
	setStr(v, "date_to", f.DateTo)
	if f.MinAmount > 0 {
		v.Set("min_amount", strconv.FormatFloat(f.MinAmount, 'f', -1, 64))
	}
	if f.MaxAmount > 0 {
		v.Set("max_amount", strconv.FormatFloat(f.MaxAmount, 'f', -1, 64))
	}
	setStr(v, "sort_by", f.SortBy)
	setStr(v, "sort_order", f.SortOrder)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

type AuditFilters struct {
	UserID   int
	Action   string
	Entity   string
	DateFrom string
	DateTo   string
	Page     int
	PerPage  int
}

func (f AuditFilters) Query() url.Values {
	v := url.Values{}
	setInt(v, "user_id", f.UserID)
	setStr(v, "action", f.Action)
	setStr(v, "entity", f.Entity)
	setStr(v, "date_from", f.DateFrom)
	setStr(v, "date_to", f.DateTo)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

type StorageFilters struct {
	Search   string
	Category string
	MimeType string
	Page     int
	PerPage  int
	Trashed  bool
}

func (f StorageFilters) Query() url.Values {
	v := url.Values{}
	setStr(v, "search", f.Search)
	setStr(v, "category", f.Category)
	setStr(v, "mime_type", f.MimeType)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	if f.Trashed {
		v.Set("trashed", "1")
	}
	return v
}
