package domain

import "sync"

// Product is the slice of catalog data a cart line carries.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description,omitempty"`
}

type Line struct {
	Product
	Quantity int `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart holds at most one line per product id. Lines keep insertion order.
// All methods are safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	order []string
	lines map[string]*Line
}

func NewCart() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddItem increments an existing line or inserts a new one with quantity 1.
func (c *Cart) AddItem(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.lines[p.ID]; ok {
		l.Quantity++
		return
	}
	c.lines[p.ID] = &Line{Product: p, Quantity: 1}
	c.order = append(c.order, p.ID)
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line; an unknown product id is ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.remove(productID)
		return
	}
	l.Quantity = quantity
}

// Deduct lowers a line's quantity by n and drops the line once nothing is
// left. Lines added or grown afterwards keep the difference.
func (c *Cart) Deduct(productID string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.lines[productID]
	if !ok || n <= 0 {
		return
	}
	if l.Quantity <= n {
		c.remove(productID)
		return
	}
	l.Quantity -= n
}

func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

func (c *Cart) remove(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]*Line)
	c.order = nil
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Snapshot is a consistent, read-only view of a cart.
type Snapshot struct {
	Items      []Line `json:"items"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int64  `json:"totalPrice"`
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{Items: make([]Line, 0, len(c.order))}
	for _, id := range c.order {
		l := *c.lines[id]
		s.Items = append(s.Items, l)
		s.TotalItems += l.Quantity
		s.TotalPrice += l.Subtotal()
	}
	return s
}
