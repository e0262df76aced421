package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanCancel(t *testing.T) {
	cases := map[string]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusShipped:   false,
		StatusDelivered: false,
		StatusCancelled: false,
	}
	for status, want := range cases {
		o := Order{Status: status}
		assert.Equal(t, want, o.CanCancel(), "status %q", status)
	}
}

func TestCancel(t *testing.T) {
	o := Order{Status: StatusConfirmed}
	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)

	shipped := Order{Status: StatusShipped}
	err := shipped.Cancel()
	require.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, StatusShipped, shipped.Status, "rejected cancel must not mutate")
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("returned"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Pending"))
}

func TestTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "p1", Price: 771, Quantity: 2},
		{ProductID: "p2", Price: 100.50, Quantity: 1},
	}
	assert.InDelta(t, 1642.50, Total(items), 1e-9)
	assert.Zero(t, Total(nil))
}

func validAddress() ShippingAddress {
	return ShippingAddress{
		FullName: "Asha Verma",
		Address:  "14 MG Road",
		City:     "Pune",
		State:    "Maharashtra",
		ZipCode:  "411001",
		Country:  "India",
		Phone:    "9876543210",
	}
}

func TestAddressValidateRequiredFields(t *testing.T) {
	fields := []struct {
		name  string
		blank func(*ShippingAddress)
	}{
		{"fullName", func(a *ShippingAddress) { a.FullName = "" }},
		{"address", func(a *ShippingAddress) { a.Address = "   " }},
		{"city", func(a *ShippingAddress) { a.City = "" }},
		{"state", func(a *ShippingAddress) { a.State = "" }},
		{"zipCode", func(a *ShippingAddress) { a.ZipCode = "" }},
		{"phone", func(a *ShippingAddress) { a.Phone = "" }},
	}
	for _, f := range fields {
		t.Run(f.name, func(t *testing.T) {
			addr := validAddress()
			f.blank(&addr)
			err := addr.Validate()
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, f.name, missing.Field)
		})
	}
}

func TestAddressValidatePhoneAndZip(t *testing.T) {
	addr := validAddress()
	addr.Phone = "98765-43210" // separators stripped before counting
	require.NoError(t, addr.Validate())

	addr.Phone = "12345"
	assert.ErrorIs(t, addr.Validate(), ErrInvalidPhone)

	addr = validAddress()
	addr.ZipCode = "4110"
	assert.ErrorIs(t, addr.Validate(), ErrInvalidZip)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone("98765-43210"))
	assert.Equal(t, "919876543210", NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestAddressNormalize(t *testing.T) {
	addr := validAddress()
	addr.Phone = "98765 43210"
	addr.ZipCode = "411-001"
	addr.Normalize()
	assert.Equal(t, "9876543210", addr.Phone)
	assert.Equal(t, "411001", addr.ZipCode)
}

func TestValidateOrder(t *testing.T) {
	addr := validAddress()
	items := []OrderItem{{ProductID: "p1", Price: 10, Quantity: 1}}

	require.NoError(t, ValidateOrder(items, "u1", &addr))

	if err := ValidateOrder(nil, "u1", &addr); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}
	if err := ValidateOrder(items, "  ", &addr); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}
