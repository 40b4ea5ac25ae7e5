package domain

// CartLine is one (book, quantity) pair in a cart. At most one line exists
// per book id; quantity is always >= 1 while the line exists.
type CartLine struct {
	Book     Book `json:"book"`
	Quantity int  `json:"quantity"`
}

// Subtotal is the line price contribution.
func (l CartLine) Subtotal() float64 {
	return l.Book.Price * float64(l.Quantity)
}
