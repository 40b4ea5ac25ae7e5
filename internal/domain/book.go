package domain

// Book is a catalog record. Books are defined at load time and never
// mutated, so they are shared freely by value.
type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Cover       string  `json:"cover"`
	Genre       string  `json:"genre"`
	Year        int     `json:"year"`
	Pages       int     `json:"pages"`
	ISBN        string  `json:"isbn"`
}
