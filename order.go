package storefront

import (
	"context"
	"fmt"
	"net/http"
)

// OrderInput is the payload for POST /orders/me.
type OrderInput struct {
	AddressID int64  `json:"addressId,omitempty"`
	Note      string `json:"note,omitempty"`
}

// CheckoutInput is the payload for POST /payments/checkout.
type CheckoutInput struct {
	OrderID       int64  `json:"orderId"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

type orderPayload struct {
	Order Order `json:"order"`
}

type ordersPayload struct {
	Orders []Order `json:"orders"`
}

type orderItemsPayload struct {
	Items []OrderItem `json:"items"`
}

// OrderService binds the order and payment endpoints.
type OrderService struct {
	gw *Gateway
}

func newOrderService(gw *Gateway) *OrderService {
	return &OrderService{gw: gw}
}

// Create places an order from the current cart.
func (o *OrderService) Create(ctx context.Context, input OrderInput) (Order, error) {
	payload, err := Fetch[orderPayload](ctx, o.gw, http.MethodPost, "/orders/me", input)
	if err != nil {
		return Order{}, err
	}
	return payload.Order, nil
}

// List returns the user's orders.
func (o *OrderService) List(ctx context.Context) ([]Order, error) {
	payload, err := Fetch[ordersPayload](ctx, o.gw, http.MethodGet, "/orders/me", nil)
	if err != nil {
		return nil, err
	}
	return payload.Orders, nil
}

// Items returns the lines of one order.
func (o *OrderService) Items(ctx context.Context, orderID int64) ([]OrderItem, error) {
	payload, err := Fetch[orderItemsPayload](ctx, o.gw, http.MethodGet, fmt.Sprintf("/orders/%d/items", orderID), nil)
	if err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// Checkout starts payment for an order. The response body is raw HTML that
// redirects to the payment provider, not structured data.
func (o *OrderService) Checkout(ctx context.Context, input CheckoutInput) (string, error) {
	body, err := o.gw.Send(ctx, http.MethodPost, "/payments/checkout", input)
	if err != nil {
		return "", err
	}
	return body.HTML, nil
}
