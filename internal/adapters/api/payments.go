package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// PaymentAPI implements ports.PaymentGateway. Creating a session is a
// one-way handoff: the caller redirects to the returned URL and the
// gateway reports the outcome out-of-band via the return URLs.
type PaymentAPI struct {
	Client *Client
}

var _ ports.PaymentGateway = (*PaymentAPI)(nil)

type checkoutSessionSchema struct {
	SessionID  string `json:"sessionId"`
	URL        string `json:"url"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (p *PaymentAPI) CreateCheckoutSession(ctx context.Context, req ports.CheckoutRequest) (ports.CheckoutSession, error) {
	body := map[string]any{
		"amount":      req.Amount,
		"productName": req.ProductName,
		"quantity":    req.Quantity,
	}

	var session checkoutSessionSchema
	err := p.Client.send(ctx, http.MethodPost, "/payments/create-checkout-session", nil, body, &session)
	if err != nil {
		return ports.CheckoutSession{}, err
	}
	if session.URL == "" {
		return ports.CheckoutSession{}, errors.New("checkout session response missing url")
	}
	return ports.CheckoutSession{
		SessionID:  session.SessionID,
		URL:        session.URL,
		SuccessURL: session.SuccessURL,
		CancelURL:  session.CancelURL,
	}, nil
}
