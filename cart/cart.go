package cart

import (
	"github.com/benms/next-tailwind-amazona/logger"
	"github.com/benms/next-tailwind-amazona/models"
)

// Item is one cart line. Slug is the merge key: a cart never holds two
// items with the same slug.
type Item struct {
	ProductID    uint    `json:"product_id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	CountInStock int     `json:"count_in_stock"`
}

// State is the full cart document persisted under the storage slot.
type State struct {
	Items           []Item                 `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod,omitempty"`
}

func emptyState() State {
	return State{Items: []Item{}}
}

// ShippingAddressPatch carries a partial shipping address update. Nil
// fields are left untouched by SaveShippingAddress, so street fields and
// a later map-derived location can arrive in separate calls.
type ShippingAddressPatch struct {
	FullName         *string  `json:"full_name"`
	Address          *string  `json:"address"`
	City             *string  `json:"city"`
	PostalCode       *string  `json:"postal_code"`
	Country          *string  `json:"country"`
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	FormattedAddress *string  `json:"formatted_address"`
	PlaceName        *string  `json:"place_name"`
	PlaceID          *string  `json:"place_id"`
}

// Store owns a single shopper's cart state and keeps the storage slot in
// sync with it. All operations are synchronous; a failed save is logged
// and the in-memory state still updates.
type Store struct {
	storage Storage
	state   State
	log     *logger.Logger
}

// NewStore hydrates from the storage slot. A missing or malformed slot
// yields the empty state.
func NewStore(storage Storage, log *logger.Logger) *Store {
	s := &Store{storage: storage, state: emptyState(), log: log}
	if loaded, ok := storage.Load(); ok {
		s.state = *loaded
		if s.state.Items == nil {
			s.state.Items = []Item{}
		}
	}
	return s
}

// State returns a copy; callers cannot mutate the store through it.
func (s *Store) State() State {
	out := s.state
	out.Items = make([]Item, len(s.state.Items))
	copy(out.Items, s.state.Items)
	return out
}

// AddItem replaces the entry with a matching slug, or appends the item.
// The caller supplies the fully-formed item including the desired final
// quantity; this is not an additive merge.
func (s *Store) AddItem(item Item) {
	replaced := false
	for i, existing := range s.state.Items {
		if existing.Slug == item.Slug {
			s.state.Items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.Items = append(s.state.Items, item)
	}
	s.persist()
}

// RemoveItem drops the entry with a matching slug. Removing a slug that
// is not present is a no-op (the state is still persisted).
func (s *Store) RemoveItem(slug string) {
	kept := s.state.Items[:0]
	for _, item := range s.state.Items {
		if item.Slug != slug {
			kept = append(kept, item)
		}
	}
	s.state.Items = kept
	s.persist()
}

// SaveShippingAddress merges the non-nil patch fields into the current
// shipping address.
func (s *Store) SaveShippingAddress(patch ShippingAddressPatch) {
	addr := &s.state.ShippingAddress
	if patch.FullName != nil {
		addr.FullName = *patch.FullName
	}
	if patch.Address != nil {
		addr.Address = *patch.Address
	}
	if patch.City != nil {
		addr.City = *patch.City
	}
	if patch.PostalCode != nil {
		addr.PostalCode = *patch.PostalCode
	}
	if patch.Country != nil {
		addr.Country = *patch.Country
	}
	if patch.Lat != nil {
		addr.Lat = *patch.Lat
	}
	if patch.Lng != nil {
		addr.Lng = *patch.Lng
	}
	if patch.FormattedAddress != nil {
		addr.FormattedAddress = *patch.FormattedAddress
	}
	if patch.PlaceName != nil {
		addr.PlaceName = *patch.PlaceName
	}
	if patch.PlaceID != nil {
		addr.PlaceID = *patch.PlaceID
	}
	s.persist()
}

// SavePaymentMethod records the shopper's choice. Validating the value
// against the recognized set is the caller's responsibility.
func (s *Store) SavePaymentMethod(method models.PaymentMethod) {
	s.state.PaymentMethod = method
	s.persist()
}

// ClearItems empties the cart but keeps the shipping address and payment
// method, so they can be reused after an order is placed.
func (s *Store) ClearItems() {
	s.state.Items = []Item{}
	s.persist()
}

// Reset returns the store to the empty default and removes the persisted
// slot entirely.
func (s *Store) Reset() {
	s.state = emptyState()
	if err := s.storage.Clear(); err != nil && s.log != nil {
		s.log.Warn("failed to clear cart storage", err)
	}
}

func (s *Store) persist() {
	if err := s.storage.Save(s.state); err != nil && s.log != nil {
		s.log.Warn("failed to persist cart state", err)
	}
}
