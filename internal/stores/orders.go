package stores

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lofireads/internal/domain"
	"lofireads/internal/storage"
)

// Checkout pricing policy: flat shipping below the free threshold, tax on
// goods plus shipping.
const (
	FreeShippingThreshold = 50.00
	FlatShippingFee       = 5.99
	TaxRate               = 0.08
)

// OrderStore persists checkout transactions as an append-only list; only
// status, tracking number and the update timestamp mutate after creation.
type OrderStore struct {
	mu sync.Mutex
	kv *storage.Store
}

func NewOrderStore(kv *storage.Store) *OrderStore {
	return &OrderStore{kv: kv}
}

func (s *OrderStore) load() []domain.Order {
	var orders []domain.Order
	s.kv.Get(storage.KeyOrders, &orders)
	return orders
}

// CreateOrderInput carries everything checkout captured from the session.
type CreateOrderInput struct {
	UserID          string
	Items           []domain.CartLine
	ShippingAddress domain.Address
	BillingAddress  *domain.Address
	Payment         domain.PaymentMethod
}

// Create prices the snapshot, assigns an id and ETA, and appends the order
// with status processing.
func (s *OrderStore) Create(in CreateOrderInput) domain.Order {
	subtotal := 0.0
	for _, l := range in.Items {
		subtotal += l.Subtotal()
	}
	shipping := FlatShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}
	tax := (subtotal + shipping) * TaxRate

	now := time.Now().UTC()
	o := domain.Order{
		ID:              newOrderID(now),
		UserID:          in.UserID,
		Items:           append([]domain.CartLine(nil), in.Items...),
		Subtotal:        subtotal,
		Shipping:        shipping,
		Tax:             tax,
		Total:           subtotal + shipping + tax,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		Payment:         in.Payment,
		Status:          domain.OrderProcessing,
		CreatedAt:       now,
		UpdatedAt:       now,
		// 7-10 days out
		EstimatedDelivery: now.AddDate(0, 0, 7+rand.Intn(4)),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	orders := append(s.load(), o)
	s.kv.Set(storage.KeyOrders, orders)
	return o
}

func newOrderID(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("ORD-%d-%s", t.UnixMilli(), suffix)
}

// GetByID looks up one order.
func (s *OrderStore) GetByID(orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.load() {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, ErrNotFound
}

// ListForUser returns userID's orders newest-created-first.
func (s *OrderStore) ListForUser(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, o := range s.load() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out
}

// ListAll returns every order newest-created-first.
func (s *OrderStore) ListAll() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.load()
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// UpdateStatus mutates status (and optionally tracking number) in place.
// Transitions between live states stay unrestricted; delivered and cancelled
// orders are frozen.
func (s *OrderStore) UpdateStatus(orderID string, status domain.OrderStatus, trackingNumber string) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, ErrBadStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.load()
	for i := range orders {
		if orders[i].ID != orderID {
			continue
		}
		if orders[i].Status.Terminal() {
			return domain.Order{}, ErrOrderClosed
		}
		orders[i].Status = status
		orders[i].UpdatedAt = time.Now().UTC()
		if trackingNumber != "" {
			orders[i].TrackingNumber = trackingNumber
		}
		s.kv.Set(storage.KeyOrders, orders)
		return orders[i], nil
	}
	return domain.Order{}, ErrNotFound
}

// Cancel moves the order to cancelled.
func (s *OrderStore) Cancel(orderID string) (domain.Order, error) {
	return s.UpdateStatus(orderID, domain.OrderCancelled, "")
}
