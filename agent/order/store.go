package order

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

type Status string

const (
	StatusProcessing      Status = "PROCESSING"
	StatusShipped         Status = "SHIPPED"
	StatusDelivered       Status = "DELIVERED"
	StatusCancelled       Status = "CANCELLED"
	StatusReturnInitiated Status = "RETURN_INITIATED"

	// Report-only tags; stored records always use StatusReturnInitiated.
	StatusReturnInitiatedShipped   Status = "RETURN_INITIATED_FOR_SHIPPED_ITEM"
	StatusReturnInitiatedDelivered Status = "RETURN_INITIATED_FOR_DELIVERED_ITEM"
)

// Record is a synthesized order. After creation only Status and
// ReturnMethod ever change.
type Record struct {
	OrderID       string
	CreatedAt     time.Time
	Status        Status
	DeliveryDate  time.Time
	PaymentMethod string
	Amount        string
	Product       Product
	ReturnMethod  string
}

// Store is a per-conversation order cache. First lookup of an order id
// synthesizes a record from the id prefix; later lookups return a
// consistent view regardless of the randomized generation.
type Store struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
	rng     *rand.Rand
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithRand(rng *rand.Rand) StoreOption {
	return func(s *Store) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		records: make(map[string]Record),
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetOrCreate returns the record for orderID, synthesizing it on first
// sight. Prefix convention: WN orders are still processing, WG orders have
// shipped, everything else was delivered.
func (s *Store) GetOrCreate(orderID string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[orderID]; ok {
		return rec
	}

	now := s.now()
	product := Catalog[catalogKeys[s.rng.Intn(len(catalogKeys))]]

	rec := Record{
		OrderID: orderID,
		Product: product,
		Amount:  product.Price,
	}

	switch {
	case strings.HasPrefix(orderID, "WN"):
		rec.CreatedAt = now.Add(-time.Duration(s.rng.Intn(46)) * time.Minute)
		rec.Status = StatusProcessing
		rec.DeliveryDate = now.AddDate(0, 0, 5)
		rec.PaymentMethod = "Credit Card"
	case strings.HasPrefix(orderID, "WG"):
		rec.CreatedAt = now.AddDate(0, 0, -(1 + s.rng.Intn(3)))
		rec.Status = StatusShipped
		rec.DeliveryDate = now.AddDate(0, 0, 2)
		rec.PaymentMethod = "Debit Card"
	default:
		rec.CreatedAt = now.AddDate(0, 0, -(4 + s.rng.Intn(7)))
		rec.Status = StatusDelivered
		rec.DeliveryDate = now.AddDate(0, 0, -1)
		rec.PaymentMethod = "PayPal"
	}

	s.records[orderID] = rec
	return rec
}

// SetStatus mutates the stored status, keeping every other field frozen.
func (s *Store) SetStatus(orderID string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[orderID]
	if !ok {
		return
	}
	rec.Status = status
	s.records[orderID] = rec
}

// SetReturnMethod records the customer's chosen return channel.
func (s *Store) SetReturnMethod(orderID, method string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[orderID]
	if !ok {
		return
	}
	rec.ReturnMethod = method
	s.records[orderID] = rec
}

// Get returns the stored record without synthesizing.
func (s *Store) Get(orderID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[orderID]
	return rec, ok
}

// Len reports how many orders this conversation has touched.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
