package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
)

func testCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Shirt", Price: 771, Quantity: 2, Color: "Azure"},
		},
		Address: models.ShippingAddress{
			FullName: "Asha Verma",
			Address:  "14 MG Road",
			City:     "Pune",
			State:    "Maharashtra",
			ZipCode:  "411001",
			Country:  "India",
			Phone:    "9876543210",
		},
		User:          models.OrderUserInfo{UserID: "u1", Name: "Asha"},
		PaymentMethod: models.PaymentCOD,
	}
}

func TestClientPlaceOrder(t *testing.T) {
	var got CheckoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order_id":     "68b0f00dcafe000000000001",
			"total_amount": 1542.0,
			"status":       models.StatusPending,
		})
	}))
	defer srv.Close()

	orderID, err := NewClient(srv.URL).PlaceOrder(context.Background(), testCheckoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "68b0f00dcafe000000000001", orderID)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "Azure", got.Items[0].Color)
	assert.Equal(t, "u1", got.User.UserID)
}

func TestClientPlaceOrderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "phone number must be exactly 10 digits"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlaceOrder(context.Background(), testCheckoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone number must be exactly 10 digits")
}

func TestClientPlaceOrderNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PlaceOrder(context.Background(), testCheckoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClientSatisfiesOrderPlacer(t *testing.T) {
	var _ OrderPlacer = NewClient("http://localhost:8000")
}
