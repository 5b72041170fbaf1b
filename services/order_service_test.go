package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benms/next-tailwind-amazona/cart"
	"github.com/benms/next-tailwind-amazona/models"
	"github.com/benms/next-tailwind-amazona/repository"
	"github.com/benms/next-tailwind-amazona/services"
)

type capturingPublisher struct {
	mu        sync.Mutex
	created   []uint
	paid      []uint
	delivered []uint
	wg        sync.WaitGroup
}

func (p *capturingPublisher) PublishOrderCreated(_ context.Context, order *models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, order.ID)
	p.wg.Done()
	return nil
}

func (p *capturingPublisher) PublishOrderPaid(_ context.Context, order *models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paid = append(p.paid, order.ID)
	p.wg.Done()
	return nil
}

func (p *capturingPublisher) PublishOrderDelivered(_ context.Context, order *models.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delivered = append(p.delivered, order.ID)
	p.wg.Done()
	return nil
}

var (
	userSession  = &services.Session{UserID: "user-1", Email: "user@example.com"}
	adminSession = &services.Session{UserID: "admin-1", Email: "admin@example.com", IsAdmin: true}
)

func validInput() services.CreateOrderInput {
	return services.CreateOrderInput{
		Items: []cart.Item{
			{ProductID: 1, Slug: "shirt", Name: "Shirt", Price: 10, Quantity: 2},
		},
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Springfield"},
		PaymentMethod:   models.PaymentMethodPayPal,
		ItemsPrice:      20,
		ShippingPrice:   15,
		TaxPrice:        3,
		TotalPrice:      38,
	}
}

func newService(t *testing.T) (*services.OrderService, *repository.MemoryOrderRepository) {
	t.Helper()
	repo := repository.NewMemoryOrderRepository()
	return services.NewOrderService(repo, nil, nil, false), repo
}

func createOrder(t *testing.T, svc *services.OrderService) *models.Order {
	t.Helper()
	order, err := svc.Create(context.Background(), userSession, validInput())
	require.NoError(t, err)
	return order
}

func TestCreate_RequiresSession(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), nil, validInput())
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestCreate_RejectsEmptyItems(t *testing.T) {
	svc, _ := newService(t)

	input := validInput()
	input.Items = nil
	_, err := svc.Create(context.Background(), userSession, input)
	assert.ErrorIs(t, err, services.ErrEmptyItems)
}

func TestCreate_RejectsUnknownPaymentMethod(t *testing.T) {
	svc, _ := newService(t)

	input := validInput()
	input.PaymentMethod = "Barter"
	_, err := svc.Create(context.Background(), userSession, input)
	assert.ErrorIs(t, err, services.ErrInvalidMethod)
}

func TestCreate_BuildsOrderFromSnapshot(t *testing.T) {
	svc, _ := newService(t)

	order := createOrder(t, svc)

	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.OrderRef)
	require.NotNil(t, order.UserID)
	assert.Equal(t, "user-1", *order.UserID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "shirt", order.Items[0].Slug)
	assert.Equal(t, 38.0, order.TotalPrice)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)
	assert.Nil(t, order.PaidAt)
	assert.WithinDuration(t, time.Now(), order.CreatedAt, time.Minute)
}

func TestPay_RequiresSessionBeforeLookup(t *testing.T) {
	svc, _ := newService(t)
	order := createOrder(t, svc)

	_, err := svc.Pay(context.Background(), nil, order.ID, services.GatewayResult{})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestPay_UnknownOrder(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Pay(context.Background(), userSession, 999, services.GatewayResult{})
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestPay_TransitionsOnce(t *testing.T) {
	svc, repo := newService(t)
	order := createOrder(t, svc)

	first := services.GatewayResult{ExternalID: "PAY-1", Status: "COMPLETED", PayerEmail: "user@example.com"}
	paid, err := svc.Pay(context.Background(), userSession, order.ID, first)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "PAY-1", paid.PaymentResult.ExternalID)

	// Second confirmation conflicts and leaves the first result intact.
	second := services.GatewayResult{ExternalID: "PAY-2", Status: "COMPLETED", PayerEmail: "other@example.com"}
	_, err = svc.Pay(context.Background(), userSession, order.ID, second)
	assert.ErrorIs(t, err, services.ErrAlreadyPaid)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAY-1", stored.PaymentResult.ExternalID)
	assert.Equal(t, paid.PaidAt.Unix(), stored.PaidAt.Unix())
}

func TestPay_ConcurrentCallsSingleWinner(t *testing.T) {
	svc, _ := newService(t)
	order := createOrder(t, svc)

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Pay(context.Background(), userSession, order.ID, services.GatewayResult{ExternalID: "PAY-RACE"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, services.ErrAlreadyPaid):
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, conflicts)
}

func TestDeliver_RequiresAdmin(t *testing.T) {
	svc, _ := newService(t)
	order := createOrder(t, svc)

	_, err := svc.Deliver(context.Background(), nil, order.ID)
	assert.ErrorIs(t, err, services.ErrAdminRequired)

	_, err = svc.Deliver(context.Background(), userSession, order.ID)
	assert.ErrorIs(t, err, services.ErrAdminRequired)
}

func TestDeliver_UnknownOrder(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Deliver(context.Background(), adminSession, 999)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestDeliver_RepeatedCallsKeepFlagSet(t *testing.T) {
	svc, _ := newService(t)
	order := createOrder(t, svc)

	delivered, err := svc.Deliver(context.Background(), adminSession, order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	require.NotNil(t, delivered.DeliveredAt)

	again, err := svc.Deliver(context.Background(), adminSession, order.ID)
	require.NoError(t, err)
	assert.True(t, again.IsDelivered, "flag stays set on repeat")
}

func TestDeliver_UnpaidAllowedByDefault(t *testing.T) {
	svc, _ := newService(t)
	order := createOrder(t, svc)

	delivered, err := svc.Deliver(context.Background(), adminSession, order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
	assert.False(t, delivered.IsPaid)
}

func TestDeliver_PaidFirstPolicy(t *testing.T) {
	repo := repository.NewMemoryOrderRepository()
	svc := services.NewOrderService(repo, nil, nil, true)

	order, err := svc.Create(context.Background(), userSession, validInput())
	require.NoError(t, err)

	_, err = svc.Deliver(context.Background(), adminSession, order.ID)
	assert.ErrorIs(t, err, services.ErrOrderNotPaid)

	_, err = svc.Pay(context.Background(), userSession, order.ID, services.GatewayResult{ExternalID: "PAY-1"})
	require.NoError(t, err)

	delivered, err := svc.Deliver(context.Background(), adminSession, order.ID)
	require.NoError(t, err)
	assert.True(t, delivered.IsDelivered)
}

func TestListMine_FiltersByUser(t *testing.T) {
	svc, _ := newService(t)
	createOrder(t, svc)

	other := &services.Session{UserID: "user-2"}
	_, err := svc.Create(context.Background(), other, validInput())
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), userSession)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-1", *mine[0].UserID)
}

func TestListAll_AdminOnly(t *testing.T) {
	svc, _ := newService(t)
	createOrder(t, svc)

	_, err := svc.ListAll(context.Background(), userSession)
	assert.ErrorIs(t, err, services.ErrAdminRequired)

	all, err := svc.ListAll(context.Background(), adminSession)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGet_RequiresSession(t *testing.T) {
	svc, _ := newService(t)
	order := createOrder(t, svc)

	_, err := svc.Get(context.Background(), nil, order.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	got, err := svc.Get(context.Background(), userSession, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestLifecycleEventsPublished(t *testing.T) {
	repo := repository.NewMemoryOrderRepository()
	publisher := &capturingPublisher{}
	svc := services.NewOrderService(repo, publisher, nil, false)

	publisher.wg.Add(3)

	order, err := svc.Create(context.Background(), userSession, validInput())
	require.NoError(t, err)
	_, err = svc.Pay(context.Background(), userSession, order.ID, services.GatewayResult{ExternalID: "PAY-1"})
	require.NoError(t, err)
	_, err = svc.Deliver(context.Background(), adminSession, order.ID)
	require.NoError(t, err)

	publisher.wg.Wait()

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	assert.Equal(t, []uint{order.ID}, publisher.created)
	assert.Equal(t, []uint{order.ID}, publisher.paid)
	assert.Equal(t, []uint{order.ID}, publisher.delivered)
}
