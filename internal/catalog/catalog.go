package catalog

import (
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"lofireads/internal/domain"
)

var ErrNotFound = errors.New("book not found")

// Filters narrow a catalog listing. All axes are optional and conjunctive;
// a nil bound or empty set leaves that axis unrestricted.
type Filters struct {
	Genres   []string
	Authors  []string
	MinPrice *float64
	MaxPrice *float64
	MinYear  *int
	MaxYear  *int
	Query    string
}

type Sort string

const (
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortTitleAsc  Sort = "title-asc"
	SortTitleDesc Sort = "title-desc"
	SortAuthorAsc Sort = "author-asc"
	SortYearDesc  Sort = "year-desc"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type YearSpan struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Provider is a pure read-only view over the fixed catalog. Facets are
// computed once over the unfiltered catalog so filter-control bounds stay
// stable while results narrow.
type Provider struct {
	books      []domain.Book
	genres     []string
	authors    []string
	priceRange Range
	yearSpan   YearSpan
}

// New builds a Provider over the bundled storefront catalog.
func New() *Provider { return NewWith(seedBooks) }

// NewWith builds a Provider over an explicit book list, in catalog order.
func NewWith(books []domain.Book) *Provider {
	p := &Provider{books: books}

	genreSet := map[string]bool{}
	authorSet := map[string]bool{}
	for i, b := range books {
		genreSet[b.Genre] = true
		authorSet[b.Author] = true
		if i == 0 {
			p.priceRange = Range{Min: b.Price, Max: b.Price}
			p.yearSpan = YearSpan{Min: b.Year, Max: b.Year}
			continue
		}
		if b.Price < p.priceRange.Min {
			p.priceRange.Min = b.Price
		}
		if b.Price > p.priceRange.Max {
			p.priceRange.Max = b.Price
		}
		if b.Year < p.yearSpan.Min {
			p.yearSpan.Min = b.Year
		}
		if b.Year > p.yearSpan.Max {
			p.yearSpan.Max = b.Year
		}
	}
	for g := range genreSet {
		p.genres = append(p.genres, g)
	}
	for a := range authorSet {
		p.authors = append(p.authors, a)
	}
	sort.Strings(p.genres)
	sort.Strings(p.authors)
	return p
}

// List returns the catalog narrowed by f and ordered by s. A nil f and
// empty s return the full catalog in catalog order. The returned slice is
// always a copy.
func (p *Provider) List(f *Filters, s Sort) []domain.Book {
	out := make([]domain.Book, 0, len(p.books))
	for _, b := range p.books {
		if f == nil || f.matches(b) {
			out = append(out, b)
		}
	}
	sortBooks(out, s)
	return out
}

func (f *Filters) matches(b domain.Book) bool {
	if len(f.Genres) > 0 && !containsString(f.Genres, b.Genre) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, b.Author) {
		return false
	}
	if f.MinPrice != nil && b.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && b.Price > *f.MaxPrice {
		return false
	}
	if f.MinYear != nil && b.Year < *f.MinYear {
		return false
	}
	if f.MaxYear != nil && b.Year > *f.MaxYear {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(b.Title), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) &&
			!strings.Contains(strings.ToLower(b.Description), q) &&
			!strings.Contains(strings.ToLower(b.Genre), q) {
			return false
		}
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// sortBooks orders in place. Sorts are stable so catalog order breaks ties.
func sortBooks(books []domain.Book, s Sort) {
	if s == "" {
		return
	}
	var coll *collate.Collator
	switch s {
	case SortTitleAsc, SortTitleDesc, SortAuthorAsc:
		coll = collate.New(language.English)
	}
	switch s {
	case SortPriceAsc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Price < books[j].Price })
	case SortPriceDesc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Price > books[j].Price })
	case SortTitleAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return coll.CompareString(books[i].Title, books[j].Title) < 0
		})
	case SortTitleDesc:
		sort.SliceStable(books, func(i, j int) bool {
			return coll.CompareString(books[i].Title, books[j].Title) > 0
		})
	case SortAuthorAsc:
		sort.SliceStable(books, func(i, j int) bool {
			return coll.CompareString(books[i].Author, books[j].Author) < 0
		})
	case SortYearDesc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Year > books[j].Year })
	}
}

// GetByID looks up one book.
func (p *Provider) GetByID(id string) (domain.Book, error) {
	for _, b := range p.books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, ErrNotFound
}

// Genres returns the sorted distinct genres of the full catalog.
func (p *Provider) Genres() []string { return append([]string(nil), p.genres...) }

// Authors returns the sorted distinct authors of the full catalog.
func (p *Provider) Authors() []string { return append([]string(nil), p.authors...) }

// PriceRange returns the min/max price over the unfiltered catalog.
func (p *Provider) PriceRange() Range { return p.priceRange }

// YearRange returns the min/max publication year over the unfiltered catalog.
func (p *Provider) YearRange() YearSpan { return p.yearSpan }

// Recommend returns up to limit books sharing the source book's genre, in
// catalog order, padding with other catalog books when the genre runs short.
// An unknown id yields an empty result.
func (p *Provider) Recommend(bookID string, limit int) []domain.Book {
	if limit <= 0 {
		limit = 4
	}
	src, err := p.GetByID(bookID)
	if err != nil {
		return nil
	}
	out := make([]domain.Book, 0, limit)
	picked := map[string]bool{bookID: true}
	for _, b := range p.books {
		if len(out) >= limit {
			return out
		}
		if b.Genre == src.Genre && !picked[b.ID] {
			out = append(out, b)
			picked[b.ID] = true
		}
	}
	for _, b := range p.books {
		if len(out) >= limit {
			break
		}
		if !picked[b.ID] {
			out = append(out, b)
			picked[b.ID] = true
		}
	}
	return out
}
