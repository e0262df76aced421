package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. The happy path moves forward only; cancellation is a
// side exit available to the user while the order has not shipped.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// PaymentCOD is the only payment method accepted at checkout.
const PaymentCOD = "cod"

var ErrCannotCancel = errors.New("order can no longer be cancelled")

// OrderItem is a line item frozen from the cart at checkout time. Name,
// price and image are copied, not referenced, so later catalog edits do not
// rewrite order history.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Color     string  `bson:"color,omitempty" json:"color,omitempty"`
}

// OrderUserInfo is a snapshot of the ordering user at checkout time, not a
// live reference.
type OrderUserInfo struct {
	UserID string `bson:"user_id" json:"userId"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
}

// Order represents a placed order. Status is the only field mutated after
// creation; orders are never deleted, only cancelled.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User          OrderUserInfo      `bson:"user" json:"user"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"total_amount" json:"total_amount"`
	Address       ShippingAddress    `bson:"address" json:"address"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`

	// Cancelable is derived from Status for API responses.
	Cancelable bool `bson:"-" json:"can_cancel"`
}

// CanCancel reports whether the user may still cancel: only before the order
// ships.
func (o *Order) CanCancel() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// Cancel moves the order to cancelled, rejecting the transition once the
// order has shipped, been delivered or already been cancelled.
func (o *Order) Cancel() error {
	if !o.CanCancel() {
		return ErrCannotCancel
	}
	o.Status = StatusCancelled
	return nil
}

// ValidStatus reports whether s is a known order status. Admin status
// updates accept any valid status from any other: manual correction
// capability, not a forward-only machine.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Total computes the sum of price x quantity over the given items.
func Total(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
