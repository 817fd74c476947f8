package models

import "encoding/json"

// AuditEntry is one row of the back-office audit trail.
type AuditEntry struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	User      *User           `json:"user,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  int             `json:"entity_id"`
	OldValues json.RawMessage `json:"old_values,omitempty"`
	NewValues json.RawMessage `json:"new_values,omitempty"`
	IPAddress string          `json:"ip_address"`
	UserAgent string          `json:"user_agent"`
	CreatedAt string          `json:"created_at"`
}

type StorageFile struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	MimeType  string  `json:"mime_type"`
	Size      int64   `json:"size"`
	Category  *string `json:"category"`
	UserID    int     `json:"user_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at"`
}

type DashboardStats struct {
	TotalUsers         int           `json:"total_users"`
	TotalProducts      int           `json:"total_products"`
	TotalCategories    int           `json:"total_categories"`
	TotalTransactions  int           `json:"total_transactions"`
	TotalRevenue       Money         `json:"total_revenue"`
	RecentTransactions []Transaction `json:"recent_transactions"`
	LowStockProducts   []Product     `json:"low_stock_products"`
	TopProducts        []Product     `json:"top_products"`
}

// SalesPoint is one bucket of the dashboard sales series.
type SalesPoint struct {
	Date    string `json:"date"`
	Revenue Money  `json:"revenue"`
	Orders  int    `json:"orders"`
}
