package state

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/calebds/tracker/internal/domain"
)

type productKey struct {
	name string
	sku  string
}

type stockKey struct {
	retailerID uint64
	productID  uint64
}

type MemoryStore struct {
	mu sync.RWMutex

	nextRetailerID uint64
	nextProductID  uint64
	nextStockID    uint64

	retailers map[string]domain.Retailer // name -> retailer
	products  map[productKey]domain.Product
	stock     map[stockKey]domain.Stock

	idem map[string]map[string]IdempotencyRecord // endpoint -> keyhash -> record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		retailers: make(map[string]domain.Retailer),
		products:  make(map[productKey]domain.Product),
		stock:     make(map[stockKey]domain.Stock),
		idem:      make(map[string]map[string]IdempotencyRecord),
	}
}

func (s *MemoryStore) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Retailer, 0, len(s.retailers))
	for _, r := range s.retailers {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetRetailerByName(ctx context.Context, name string) (domain.Retailer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.retailers[name]
	return r, ok, nil
}

func (s *MemoryStore) SeedRetailers(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := s.retailers[name]; ok {
			continue
		}
		s.nextRetailerID++
		s.retailers[name] = domain.Retailer{ID: s.nextRetailerID, Name: name}
	}
	return nil
}

func (s *MemoryStore) FirstOrCreateProduct(ctx context.Context, p domain.Product) (domain.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := productKey{name: p.Name, sku: p.SKU}
	if existing, ok := s.products[key]; ok {
		return existing, false, nil
	}

	s.nextProductID++
	p.ID = s.nextProductID
	s.products[key] = p
	return p, true, nil
}

func (s *MemoryStore) EnsureStock(ctx context.Context, retailerID, productID uint64, localSKU string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{retailerID: retailerID, productID: productID}
	if _, ok := s.stock[key]; ok {
		return false, nil
	}

	s.nextStockID++
	s.stock[key] = domain.Stock{
		ID:         s.nextStockID,
		RetailerID: retailerID,
		ProductID:  productID,
		SKU:        localSKU,
	}
	return true, nil
}

func (s *MemoryStore) ListStockForRetailer(ctx context.Context, retailerID uint64) ([]domain.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Stock, 0, 8)
	for _, st := range s.stock {
		if st.RetailerID != retailerID {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CountProducts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

func (s *MemoryStore) CountStock(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stock), nil
}

func (s *MemoryStore) GetIdempotency(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ep, ok := s.idem[endpoint]
	if !ok {
		return IdempotencyRecord{}, false, nil
	}
	rec, ok := ep[idemKeyHash]
	if !ok {
		return IdempotencyRecord{}, false, nil
	}

	if time.Now().UTC().After(rec.ExpiresAt) {
		return IdempotencyRecord{}, false, nil
	}

	return rec, true, nil
}

func (s *MemoryStore) PutIdempotency(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ep, ok := s.idem[endpoint]
	if !ok {
		ep = make(map[string]IdempotencyRecord)
		s.idem[endpoint] = ep
	}
	ep[idemKeyHash] = rec
	return nil
}

// HashIdempotencyKey hashes idempotency keys deterministically for storage.
func HashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
