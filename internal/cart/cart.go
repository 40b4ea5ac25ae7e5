package cart

import (
	"sync"

	"lofireads/internal/domain"
)

// Cart holds the volatile (book, quantity) lines of one browsing session.
// Totals are derived from current lines on every read, never cached.
type Cart struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func New() *Cart { return &Cart{} }

// Add increments the line for book by 1, creating it at quantity 1 when
// absent.
func (c *Cart) Add(book domain.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Book.ID == book.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{Book: book, Quantity: 1})
}

// Remove deletes the line for bookID; no-op when absent.
func (c *Cart) Remove(bookID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(bookID)
}

func (c *Cart) removeLocked(bookID string) {
	for i := range c.lines {
		if c.lines[i].Book.ID == bookID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity of an existing line. qty <= 0 removes the
// line; a missing line is left alone.
func (c *Cart) SetQuantity(bookID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		c.removeLocked(bookID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Book.ID == bookID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a snapshot copy of the current lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartLine(nil), c.lines...)
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the sum of price*quantity over current lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Manager resolves a session id to its cart, creating one on first use.
// Carts live only in process memory and die with it.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewManager() *Manager { return &Manager{carts: map[string]*Cart{}} }

// For returns the cart owned by sessionID.
func (m *Manager) For(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[sessionID]
	if !ok {
		c = New()
		m.carts[sessionID] = c
	}
	return c
}

// Drop releases the cart for sessionID, if any.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}
