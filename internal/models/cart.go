package models

// Cart holds the ordered list of product ids added during one shopping
// session. Duplicates are allowed (repeat interest); the caller owns the
// cart exclusively, so the type itself does no locking.
type Cart struct {
	SessionID string
	items     []string
}

// NewCart creates an empty cart for the given shopping session.
func NewCart(sessionID string) *Cart {
	return &Cart{SessionID: sessionID}
}

// Add appends a product id to the cart.
func (c *Cart) Add(productID string) {
	c.items = append(c.items, productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// View returns a copy of the cart contents in insertion order.
func (c *Cart) View() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the cart, duplicates included.
func (c *Cart) Len() int {
	return len(c.items)
}
