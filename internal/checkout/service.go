package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/models"
)

// Webhook event types that drive a terminal status transition. Every other
// type is acknowledged and ignored.
const (
	eventSessionCompleted      = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	eventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	eventSessionExpired        = "checkout.session.expired"
)

type ProductGetter interface {
	GetByID(ctx context.Context, id string) (models.Product, error)
}

type OrderStore interface {
	Upsert(ctx context.Context, o models.Order) error
}

// CartItem is client input: only the id and quantity are trusted.
type CartItem struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

type Service struct {
	Products ProductGetter
	Orders   OrderStore
	Provider Provider
	Log      zerolog.Logger
}

// CreateSession builds a provider checkout session from the cart and persists
// a pending Order keyed by the session id before returning, so every session
// has an order row even if the webhook never arrives.
func (s *Service) CreateSession(ctx context.Context, email string, items []CartItem) (Session, error) {
	if email == "" {
		return Session{}, models.Invalid("email is required")
	}
	if len(items) == 0 {
		return Session{}, models.Invalid("cart is empty")
	}

	lines := make([]SessionLine, 0, len(items))
	snapshot := make([]models.OrderItem, 0, len(items))
	var total int64
	for _, it := range items {
		product, err := s.Products.GetByID(ctx, it.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return Session{}, &models.InvalidCartError{ProductID: it.ID}
			}
			return Session{}, err
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, SessionLine{Name: product.Name, UnitAmount: product.Price, Quantity: qty})
		snapshot = append(snapshot, models.OrderItem{
			ID:       product.ID,
			Name:     product.Name,
			Image:    product.Image,
			Price:    product.Price,
			Quantity: qty,
		})
		total += product.Price * qty
	}

	sess, err := s.Provider.CreateSession(ctx, email, lines)
	if err != nil {
		return Session{}, err
	}

	order := models.Order{
		SessionID: sess.ID,
		Email:     strings.ToLower(email),
		Items:     snapshot,
		Amount:    total,
		Status:    models.OrderPending,
		CreatedAt: time.Now(),
	}
	if err := s.Orders.Upsert(ctx, order); err != nil {
		return Session{}, err
	}

	s.Log.Info().Str("session_id", sess.ID).Int64("amount", total).Msg("checkout session created")
	return sess, nil
}

// SessionStatus reports the provider's view of a session verbatim; no local
// state is consulted or mutated.
func (s *Service) SessionStatus(ctx context.Context, sessionID string) (SessionStatus, error) {
	if sessionID == "" {
		return SessionStatus{}, models.Invalid("session_id is required")
	}
	return s.Provider.GetSession(ctx, sessionID)
}

// Reconcile applies an asynchronous payment notification. The write is an
// upsert keyed by session id, so redelivery of the same event converges on
// the same terminal order state. A failed upsert propagates so the provider
// sees a non-2xx response and redelivers.
func (s *Service) Reconcile(ctx context.Context, evt Event) error {
	var status models.OrderStatus
	switch evt.Type {
	case eventSessionCompleted, eventAsyncPaymentSucceeded:
		status = models.OrderSucceeded
	case eventAsyncPaymentFailed, eventSessionExpired:
		status = models.OrderFailed
	default:
		return nil
	}

	// Best effort: the status transition must not be blocked by a line-item
	// lookup failure, the order then carries empty items and a zero amount.
	var amount int64
	items, err := s.Provider.ListLineItems(ctx, evt.SessionID)
	if err != nil {
		s.Log.Warn().Err(err).Str("session_id", evt.SessionID).Msg("line item lookup failed")
		items = nil
	}
	for _, it := range items {
		amount += it.AmountTotal
	}

	order := models.Order{
		SessionID:       evt.SessionID,
		Email:           strings.ToLower(evt.Email),
		Items:           items,
		Amount:          amount,
		Status:          status,
		PaymentIntentID: evt.PaymentIntentID,
		CreatedAt:       time.Now(),
	}
	if err := s.Orders.Upsert(ctx, order); err != nil {
		return err
	}
	s.Log.Info().Str("session_id", evt.SessionID).Str("status", string(status)).Msg("order reconciled")
	return nil
}
