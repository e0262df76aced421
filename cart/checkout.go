package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/models"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNotSignedIn = errors.New("sign in to place an order")
)

// Identity is the signed-in user as the client knows it.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// OrderInput is what the checkout form collects.
type OrderInput struct {
	Address       models.ShippingAddress `json:"address"`
	PaymentMethod string                 `json:"payment_method"`
}

// CheckoutRequest is the frozen cart snapshot submitted to the order
// service.
type CheckoutRequest struct {
	Items         []models.OrderItem     `json:"items"`
	Address       models.ShippingAddress `json:"address"`
	User          models.OrderUserInfo   `json:"user"`
	PaymentMethod string                 `json:"payment_method"`
}

// OrderPlacer submits a checkout request and returns the created order id.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req CheckoutRequest) (orderID string, err error)
}

// PlaceOrder runs the client-side validation gate and, only if it passes,
// submits the frozen line items to the order service. Success clears the
// cart; any rejection — validation or network — leaves cart state untouched.
func (m *Manager) PlaceOrder(ctx context.Context, placer OrderPlacer, input OrderInput, id Identity) (string, error) {
	if len(m.lines) == 0 {
		return "", ErrEmptyCart
	}
	if id.ID == "" {
		return "", ErrNotSignedIn
	}
	addr := input.Address
	if err := addr.Validate(); err != nil {
		return "", err
	}
	addr.Normalize()

	method := input.PaymentMethod
	if method == "" {
		method = models.PaymentCOD
	}
	req := CheckoutRequest{
		Items:         m.snapshot(),
		Address:       addr,
		User:          models.OrderUserInfo{UserID: id.ID, Name: id.Name, Email: id.Email},
		PaymentMethod: method,
	}
	orderID, err := placer.PlaceOrder(ctx, req)
	if err != nil {
		return "", fmt.Errorf("placing order: %w", err)
	}
	if err := m.Clear(); err != nil {
		return orderID, err
	}
	return orderID, nil
}

func (m *Manager) snapshot() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(m.lines))
	for _, l := range m.lines {
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Image:     l.Image,
			Quantity:  l.Quantity,
			Color:     l.Color,
		})
	}
	return items
}
