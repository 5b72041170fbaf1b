package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benms/next-tailwind-amazona/models"
)

func newTestStore() (*Store, *MemoryStorage) {
	storage := NewMemoryStorage()
	return NewStore(storage, nil), storage
}

func strPtr(s string) *string { return &s }

func TestAddItem_ReplacesBySlug(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(Item{Slug: "shirt", Name: "Shirt", Price: 10, Quantity: 1})
	store.AddItem(Item{Slug: "pants", Name: "Pants", Price: 20, Quantity: 1})
	store.AddItem(Item{Slug: "shirt", Name: "Shirt", Price: 10, Quantity: 3})

	state := store.State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "shirt", state.Items[0].Slug)
	assert.Equal(t, 3, state.Items[0].Quantity, "last supplied item wins")
	assert.Equal(t, "pants", state.Items[1].Slug, "insertion order preserved")
}

func TestAddItem_AfterRemove(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(Item{Slug: "shirt", Quantity: 2})
	store.RemoveItem("shirt")
	store.AddItem(Item{Slug: "shirt", Quantity: 5})

	state := store.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
}

func TestRemoveItem_MissingSlugIsNoOp(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(Item{Slug: "shirt", Quantity: 1})
	store.RemoveItem("no-such-slug")

	assert.Len(t, store.State().Items, 1)
}

func TestSaveShippingAddress_MergesIncrementally(t *testing.T) {
	store, _ := newTestStore()

	store.SaveShippingAddress(ShippingAddressPatch{
		Address: strPtr("1 Main St"),
		City:    strPtr("Springfield"),
	})
	store.SaveShippingAddress(ShippingAddressPatch{
		PostalCode: strPtr("12345"),
	})

	addr := store.State().ShippingAddress
	assert.Equal(t, "1 Main St", addr.Address)
	assert.Equal(t, "Springfield", addr.City)
	assert.Equal(t, "12345", addr.PostalCode)
}

func TestSaveShippingAddress_LateLocationPatch(t *testing.T) {
	store, _ := newTestStore()

	store.SaveShippingAddress(ShippingAddressPatch{Address: strPtr("1 Main St")})
	lat, lng := 51.5, -0.12
	store.SaveShippingAddress(ShippingAddressPatch{
		Lat:       &lat,
		Lng:       &lng,
		PlaceName: strPtr("Main Street"),
	})

	addr := store.State().ShippingAddress
	assert.Equal(t, "1 Main St", addr.Address)
	assert.Equal(t, 51.5, addr.Lat)
	assert.Equal(t, "Main Street", addr.PlaceName)
}

func TestClearItems_PreservesAddressAndMethod(t *testing.T) {
	store, _ := newTestStore()

	store.AddItem(Item{Slug: "shirt", Quantity: 1})
	store.SaveShippingAddress(ShippingAddressPatch{Address: strPtr("1 Main St")})
	store.SavePaymentMethod(models.PaymentMethodPayPal)

	store.ClearItems()

	state := store.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, "1 Main St", state.ShippingAddress.Address)
	assert.Equal(t, models.PaymentMethodPayPal, state.PaymentMethod)
}

func TestReset_ClearsStateAndSlot(t *testing.T) {
	store, storage := newTestStore()

	store.AddItem(Item{Slug: "shirt", Quantity: 1})
	store.SavePaymentMethod(models.PaymentMethodStripe)
	store.Reset()

	assert.Equal(t, emptyState(), store.State())

	_, ok := storage.Load()
	assert.False(t, ok, "persisted slot must be deleted, not emptied")

	// A fresh hydration from the cleared slot is the same empty state.
	fresh := NewStore(storage, nil)
	assert.Equal(t, emptyState(), fresh.State())
}

func TestHydration_FromPersistedSlot(t *testing.T) {
	storage := NewMemoryStorage()
	first := NewStore(storage, nil)
	first.AddItem(Item{Slug: "shirt", Name: "Shirt", Price: 10, Quantity: 2})
	first.SavePaymentMethod(models.PaymentMethodCashOnDelivery)

	second := NewStore(storage, nil)
	state := second.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "shirt", state.Items[0].Slug)
	assert.Equal(t, models.PaymentMethodCashOnDelivery, state.PaymentMethod)
}

func TestHydration_CorruptedSlotFailsSoft(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Seed([]byte(`{"items": [{"slug": truncated`))

	assert.NotPanics(t, func() {
		store := NewStore(storage, nil)
		assert.Equal(t, emptyState(), store.State())
	})
}

func TestState_ReturnsCopy(t *testing.T) {
	store, _ := newTestStore()
	store.AddItem(Item{Slug: "shirt", Quantity: 1})

	state := store.State()
	state.Items[0].Quantity = 99

	assert.Equal(t, 1, store.State().Items[0].Quantity)
}
