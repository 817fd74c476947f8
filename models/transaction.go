package models

// TransactionStatus is the order lifecycle enumeration. The happy path is
// pending -> processing -> shipped -> delivered -> completed; cancelled and
// refunded are terminal side exits.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusShipped    TransactionStatus = "shipped"
	StatusDelivered  TransactionStatus = "delivered"
	StatusCompleted  TransactionStatus = "completed"
	StatusCancelled  TransactionStatus = "cancelled"
	StatusRefunded   TransactionStatus = "refunded"
)

// statusFlow mirrors the server's transition rules. It only drives UI
// enablement; the server re-validates every transition.
var statusFlow = map[TransactionStatus][]TransactionStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusCompleted, StatusRefunded},
	StatusCompleted:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to TransactionStatus) bool {
	for _, s := range statusFlow[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one.
func NextStatuses(from TransactionStatus) []TransactionStatus {
	next := statusFlow[from]
	out := make([]TransactionStatus, len(next))
	copy(out, next)
	return out
}

// Terminal reports whether no further transition exists.
func (s TransactionStatus) Terminal() bool {
	return len(statusFlow[s]) == 0
}

type Transaction struct {
	ID          int               `json:"id"`
	UserID      int               `json:"user_id"`
	TotalAmount Money             `json:"total_amount"`
	Status      TransactionStatus `json:"status"`
	Notes       *string           `json:"notes"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	DeletedAt   *string           `json:"deleted_at"`
	User        *User             `json:"user,omitempty"`
	Items       []TransactionItem `json:"items"`
}

// ItemCount is the total unit count across all lines.
func (t Transaction) ItemCount() int {
	n := 0
	for _, it := range t.Items {
		n += it.Quantity
	}
	return n
}

type TransactionItem struct {
	ID            int      `json:"id"`
	TransactionID int      `json:"transaction_id"`
	ProductID     int      `json:"product_id"`
	Quantity      int      `json:"quantity"`
	Price         Money    `json:"price"`
	Total         Money    `json:"total"`
	Product       *Product `json:"product,omitempty"`
}

type CreateTransactionItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateTransactionRequest struct {
	Items  []CreateTransactionItem `json:"items"`
	Notes  string                  `json:"notes,omitempty"`
	Status TransactionStatus       `json:"status,omitempty"`
}

type UpdateTransactionRequest struct {
	Status TransactionStatus `json:"status,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}
