package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"storefront/models"
)

// Key is the fixed storage key the cart lives under.
const Key = "storefront_cart"

var ErrNoProductID = errors.New("product has no id")

// Product is the slice of a catalog record the cart needs; the rest of the
// line is denormalised onto it at add time.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// FromCatalog builds the cart's view of a catalog product, picking the lead
// image for the chosen color. A product that was never persisted keeps an
// empty id, which AddLine rejects.
func FromCatalog(p models.Product, color string) Product {
	var id string
	if !p.ID.IsZero() {
		id = p.ID.Hex()
	}
	return Product{
		ID:    id,
		Name:  p.Name,
		Price: p.Price,
		Image: p.FirstImage(color),
	}
}

// Line is one cart entry. Uniqueness key is (ProductID, Color): adding the
// same product+color again increments Quantity, a different color is a new
// line.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Color     string  `json:"color,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Manager owns the line list and recomputes count and subtotal on every
// mutation, persisting the canonical list to its Store.
type Manager struct {
	store    Store
	lines    []Line
	count    int
	subtotal float64
}

// NewManager loads any previously persisted cart from the store.
func NewManager(store Store) (*Manager, error) {
	m := &Manager{store: store}
	data, ok, err := store.Load(Key)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &m.lines); err != nil {
			return nil, fmt.Errorf("decoding cart: %w", err)
		}
	}
	m.recompute()
	return m, nil
}

// Lines returns a copy of the current line list.
func (m *Manager) Lines() []Line {
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Count is the sum of quantities over all lines.
func (m *Manager) Count() int { return m.count }

// Subtotal is the sum of price x quantity over all lines.
func (m *Manager) Subtotal() float64 { return m.subtotal }

// AddLine merges on (product id, color): an existing line gets its quantity
// incremented, otherwise a new line is appended.
func (m *Manager) AddLine(p Product, quantity int, color string) error {
	if p.ID == "" {
		return ErrNoProductID
	}
	for i := range m.lines {
		if m.lines[i].ProductID == p.ID && m.lines[i].Color == color {
			m.lines[i].Quantity += quantity
			return m.commit()
		}
	}
	m.lines = append(m.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Color:     color,
		Quantity:  quantity,
	})
	return m.commit()
}

// UpdateQuantity sets the matching line's quantity directly; anything below
// one removes the line instead.
func (m *Manager) UpdateQuantity(productID string, quantity int, color string) error {
	if quantity < 1 {
		return m.RemoveLine(productID, color)
	}
	for i := range m.lines {
		if m.lines[i].ProductID == productID && m.lines[i].Color == color {
			m.lines[i].Quantity = quantity
			break
		}
	}
	return m.commit()
}

// RemoveLine filters out the line matching (id, color) when color is given,
// otherwise every line with the id.
func (m *Manager) RemoveLine(productID, color string) error {
	kept := m.lines[:0]
	for _, l := range m.lines {
		if l.ProductID == productID && (color == "" || l.Color == color) {
			continue
		}
		kept = append(kept, l)
	}
	m.lines = kept
	return m.commit()
}

// Clear empties the cart. Called after a successful order placement.
func (m *Manager) Clear() error {
	m.lines = nil
	return m.commit()
}

func (m *Manager) commit() error {
	m.recompute()
	data, err := json.Marshal(m.lines)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := m.store.Save(Key, data); err != nil {
		return fmt.Errorf("persisting cart: %w", err)
	}
	return nil
}

func (m *Manager) recompute() {
	m.count = 0
	m.subtotal = 0
	for _, l := range m.lines {
		m.count += l.Quantity
		m.subtotal += l.Price * float64(l.Quantity)
	}
}
