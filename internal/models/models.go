package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserView is the shape returned to clients; it never carries credentials.
type UserView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

// Product ids are namespaced by their upstream source (e.g. "dj_42"), so
// repeated catalog syncs overwrite in place.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // minor currency units
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderSucceeded OrderStatus = "succeeded"
	OrderFailed    OrderStatus = "failed"
)

// OrderItem serves both the snapshot written at session creation (id, name,
// price, quantity, image) and the provider line items written at
// reconciliation (description, amounts, currency). Unused fields are omitted.
type OrderItem struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	Quantity       int64  `json:"quantity,omitempty"`
	Price          int64  `json:"price,omitempty"`
	AmountSubtotal int64  `json:"amount_subtotal,omitempty"`
	AmountTotal    int64  `json:"amount_total,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Image          string `json:"image,omitempty"`
}

// Order is keyed by the provider-issued checkout session id; that id is the
// only join between session creation and webhook reconciliation.
type Order struct {
	SessionID       string      `json:"session_id"`
	Email           string      `json:"email"`
	Items           []OrderItem `json:"items"`
	Amount          int64       `json:"amount"`
	Status          OrderStatus `json:"status"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}
