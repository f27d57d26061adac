package checkout

import (
	"context"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"storefront/internal/models"
)

// SessionLine is one priced line sent to the payment provider. Amounts are
// always taken from the stored catalog, never from the client.
type SessionLine struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type Session struct {
	ID  string
	URL string
}

type SessionStatus struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// Provider is the payment collaborator behind a fixed interface, implemented
// by Stripe in production and faked in tests.
type Provider interface {
	CreateSession(ctx context.Context, email string, lines []SessionLine) (Session, error)
	GetSession(ctx context.Context, id string) (SessionStatus, error)
	ListLineItems(ctx context.Context, sessionID string) ([]models.OrderItem, error)
}

type StripeProvider struct {
	API *client.API
	// ClientBaseURL parameterizes the post-payment redirect targets.
	ClientBaseURL string
}

func (p *StripeProvider) CreateSession(ctx context.Context, email string, lines []SessionLine) (Session, error) {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(l.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name),
				},
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:      stripe.String(email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          items,
		SuccessURL:         stripe.String(p.ClientBaseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(p.ClientBaseURL + "/cancel"),
	}
	params.Context = ctx

	sess, err := p.API.CheckoutSessions.New(params)
	if err != nil {
		return Session{}, &models.UpstreamError{Op: "create checkout session", Err: err}
	}
	return Session{ID: sess.ID, URL: sess.URL}, nil
}

func (p *StripeProvider) GetSession(ctx context.Context, id string) (SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.API.CheckoutSessions.Get(id, params)
	if err != nil {
		return SessionStatus{}, &models.UpstreamError{Op: "retrieve checkout session", Err: err}
	}
	return SessionStatus{
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
	}, nil
}

func (p *StripeProvider) ListLineItems(ctx context.Context, sessionID string) ([]models.OrderItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(100)

	var items []models.OrderItem
	iter := p.API.CheckoutSessions.ListLineItems(params)
	for iter.Next() {
		li := iter.LineItem()
		item := models.OrderItem{
			Description:    li.Description,
			Name:           li.Description,
			Quantity:       li.Quantity,
			AmountSubtotal: li.AmountSubtotal,
			AmountTotal:    li.AmountTotal,
			Currency:       string(li.Currency),
		}
		if li.Price != nil {
			item.ID = li.Price.ID
			item.Price = li.Price.UnitAmount
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, &models.UpstreamError{Op: "list line items", Err: err}
	}
	return items, nil
}
