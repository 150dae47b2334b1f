package domain

import "github.com/shopspring/decimal"

type LineItem struct {
	Configuration Configuration   `json:"configuration"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered list of line items addressed by position. Entries with
// equal configurations are kept apart; nothing is merged.
// A Cart is not safe for concurrent use.
type Cart struct {
	items []LineItem
}

func NewCart() *Cart {
	return &Cart{}
}

// RestoreCart rebuilds a cart from persisted items. Stored unit prices are
// kept as they are; quantities below 1 are raised to 1.
func RestoreCart(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, 0, len(items))}
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		c.items = append(c.items, item)
	}
	return c
}

// Add appends a new entry with quantity 1, priced at the current rule.
func (c *Cart) Add(cfg Configuration) LineItem {
	item := LineItem{
		Configuration: cfg,
		Quantity:      1,
		UnitPrice:     Price(cfg),
	}
	c.items = append(c.items, item)
	return item
}

// SetQuantity moves the quantity at index by delta (+1 or -1), never below 1.
// It reports whether the cart changed.
func (c *Cart) SetQuantity(index, delta int) bool {
	if delta != 1 && delta != -1 {
		return false
	}
	if index < 0 || index >= len(c.items) {
		return false
	}
	q := max(1, c.items[index].Quantity+delta)
	if q == c.items[index].Quantity {
		return false
	}
	c.items[index].Quantity = q
	return true
}

// Remove deletes the entry at index. It reports whether the cart changed.
func (c *Cart) Remove(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return true
}

func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// EntryCount is the number of distinct entries.
func (c *Cart) EntryCount() int {
	return len(c.items)
}

func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}
