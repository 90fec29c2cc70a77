package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"food-delivery/delivery-svc/internal/domain"
	"food-delivery/delivery-svc/internal/mocks"
	"food-delivery/delivery-svc/internal/service"
	"food-delivery/delivery-svc/internal/storage"
	"food-delivery/pricing"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newCatalog(t *testing.T) *storage.CatalogStore {
	t.Helper()
	catalog, err := storage.EmbeddedCatalog()
	require.NoError(t, err)
	return catalog
}

func quietLogger() *logrus.Logger {
	logger, _ := logtest.NewNullLogger()
	return logger
}

func line(id, restaurantID int, price string, qty int) domain.CartLine {
	return domain.CartLine{
		MenuItem: domain.MenuItem{ID: id, RestaurantID: restaurantID, Price: pricing.MustParse(price)},
		Quantity: qty,
	}
}

func sushiRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		RestaurantID:    1,
		Items:           []domain.CartLine{line(101, 1, "12.99", 2), line(104, 1, "3.99", 1)},
		DeliveryAddress: "1 Main St",
		CustomerName:    "Ana",
		CustomerPhone:   "555-0100",
		Subtotal:        pricing.MustParse("29.97"),
		DeliveryFee:     pricing.MustParse("2.99"),
		Total:           pricing.MustParse("32.96"),
	}
}

func TestCatalogService_Search(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "matches name", query: "sushi", want: []string{"Sakura Sushi"}},
		{name: "matches cuisine case-insensitively", query: "ITALIAN", want: []string{"Mama's Pizzeria"}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	svc := service.NewCatalogService(newCatalog(t))
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			results := svc.Search(testCase.query)

			names := []string{}
			for _, rest := range results {
				names = append(names, rest.Name)
			}
			assert.Equal(t, testCase.want, names)
		})
	}
}

func TestCatalogService_SearchEmptyReturnsAll(t *testing.T) {
	svc := service.NewCatalogService(newCatalog(t))

	assert.Equal(t, svc.List(), svc.Search(""))
	assert.Len(t, svc.Search(""), 6)
}

func TestCatalogService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        int
		mockRest  domain.Restaurant
		mockError error
		wantErr   error
	}{
		{name: "found", id: 1, mockRest: domain.Restaurant{ID: 1, Name: "Sakura Sushi"}},
		{name: "not found", id: 999, mockError: domain.ErrRestaurantNotFound, wantErr: domain.ErrNotFound},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewCatalogRepository(t)
			mockRepo.On("Restaurant", testCase.id).Return(testCase.mockRest, testCase.mockError).Once()
			svc := service.NewCatalogService(mockRepo)

			result, err := svc.Get(testCase.id)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.mockRest, result)
			}
		})
	}
}

func TestCatalogService_Menu(t *testing.T) {
	svc := service.NewCatalogService(newCatalog(t))

	rest, menu, err := svc.Menu(2)
	require.NoError(t, err)
	assert.Equal(t, "Mama's Pizzeria", rest.Name)
	require.Len(t, menu, 5)
	for _, item := range menu {
		assert.Equal(t, 2, item.RestaurantID)
	}

	_, _, err = svc.Menu(999)
	assert.True(t, domain.IsNotFound(err))
}

func TestOrderService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CreateOrderRequest
	}{
		{name: "no restaurant id", req: domain.CreateOrderRequest{Items: []domain.CartLine{line(101, 1, "12.99", 1)}}},
		{name: "negative restaurant id", req: domain.CreateOrderRequest{RestaurantID: -1, Items: []domain.CartLine{line(101, 1, "12.99", 1)}}},
		{name: "no items", req: domain.CreateOrderRequest{RestaurantID: 1, Items: []domain.CartLine{}}},
		{name: "nil items", req: domain.CreateOrderRequest{RestaurantID: 1}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := mocks.NewOrderRepository(t)
			mockPub := mocks.NewEventPublisher(t)
			svc := service.NewOrderService(mockRepo, newCatalog(t), service.WithPublisher(mockPub))

			_, err := svc.Create(context.Background(), testCase.req)

			assert.ErrorIs(t, err, domain.ErrValidation)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
			mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_CreateTrustsClient(t *testing.T) {
	mockPub := mocks.NewEventPublisher(t)
	mockPub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated && e.OrderID == 1000 && e.RestaurantID == 1 &&
			e.Status == domain.StatusPending && len(e.Items) == 2 && e.Timestamp.Equal(fixedNow)
	})).Return(nil).Once()

	store := storage.NewOrderStore(1000)
	svc := service.NewOrderService(store, newCatalog(t),
		service.WithPublisher(mockPub),
		service.WithClock(fixedClock),
		service.WithLogger(quietLogger()),
	)

	req := sushiRequest()
	req.Total = pricing.MustParse("1.00")

	order, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1000, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, fixedNow, order.CreatedAt)
	assert.Equal(t, fixedNow.Add(30*time.Minute), order.EstimatedDelivery)
	assert.Equal(t, pricing.MustParse("29.97"), order.Subtotal)
	assert.Equal(t, pricing.MustParse("1.00"), order.Total)
	assert.Equal(t, req.Items, order.Items)
	assert.Equal(t, "Ana", order.CustomerName)

	stored, err := svc.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, stored)
}

func TestOrderService_CreateAssignsIncreasingIDs(t *testing.T) {
	svc := service.NewOrderService(storage.NewOrderStore(1000), newCatalog(t), service.WithLogger(quietLogger()))

	var ids []int
	for i := 0; i < 3; i++ {
		order, err := svc.Create(context.Background(), sushiRequest())
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	assert.Equal(t, []int{1000, 1001, 1002}, ids)
	assert.Len(t, svc.List(), 3)
}

func TestOrderService_CreatePricingPolicies(t *testing.T) {
	tests := []struct {
		name         string
		policy       service.PricingPolicy
		mutate       func(req *domain.CreateOrderRequest)
		wantSubtotal string
		wantFee      string
		wantTotal    string
		wantErr      error
	}{
		{
			name:         "recompute ignores client totals",
			policy:       service.PricingRecompute,
			mutate:       func(req *domain.CreateOrderRequest) { req.Subtotal, req.Total = 0, 0 },
			wantSubtotal: "29.97",
			wantFee:      "2.99",
			wantTotal:    "32.96",
		},
		{
			name:   "recompute rejects overflowing subtotal",
			policy: service.PricingRecompute,
			mutate: func(req *domain.CreateOrderRequest) {
				req.Items[0].Price = pricing.MustParse("92233720368547758.07")
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:   "recompute rejects overflowing total",
			policy: service.PricingRecompute,
			mutate: func(req *domain.CreateOrderRequest) {
				req.Items = req.Items[:1]
				req.Items[0].Price = pricing.MustParse("92233720368547758.07")
				req.Items[0].Quantity = 1
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:   "catalog reprices lines and fee",
			policy: service.PricingCatalog,
			mutate: func(req *domain.CreateOrderRequest) {
				req.Items[0].Price = pricing.MustParse("0.01")
				req.DeliveryFee = 0
			},
			wantSubtotal: "29.97",
			wantFee:      "2.99",
			wantTotal:    "32.96",
		},
		{
			name:    "catalog rejects unknown restaurant",
			policy:  service.PricingCatalog,
			mutate:  func(req *domain.CreateOrderRequest) { req.RestaurantID = 999 },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "catalog rejects item from another restaurant",
			policy:  service.PricingCatalog,
			mutate:  func(req *domain.CreateOrderRequest) { req.Items[1] = line(201, 2, "14.99", 1) },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "catalog rejects non-positive quantity",
			policy:  service.PricingCatalog,
			mutate:  func(req *domain.CreateOrderRequest) { req.Items[0].Quantity = 0 },
			wantErr: domain.ErrValidation,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc := service.NewOrderService(storage.NewOrderStore(1000), newCatalog(t),
				service.WithPricingPolicy(testCase.policy),
				service.WithLogger(quietLogger()),
			)
			req := sushiRequest()
			testCase.mutate(&req)

			order, err := svc.Create(context.Background(), req)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Empty(t, svc.List())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantSubtotal, order.Subtotal.String())
			assert.Equal(t, testCase.wantFee, order.DeliveryFee.String())
			assert.Equal(t, testCase.wantTotal, order.Total.String())
		})
	}
}

func TestOrderService_CatalogPolicySnapshotsMenuItems(t *testing.T) {
	svc := service.NewOrderService(storage.NewOrderStore(1000), newCatalog(t),
		service.WithPricingPolicy(service.PricingCatalog),
		service.WithLogger(quietLogger()),
	)
	req := sushiRequest()
	req.Items[0].Name = "forged"

	order, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "California Roll", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderService_PublishFailureIsNotFatal(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	mockPub := mocks.NewEventPublisher(t)
	mockPub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	svc := service.NewOrderService(storage.NewOrderStore(1000), newCatalog(t),
		service.WithPublisher(mockPub),
		service.WithLogger(logger),
	)

	order, err := svc.Create(context.Background(), sushiRequest())
	require.NoError(t, err)

	_, err = svc.Get(order.ID)
	assert.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "failed to publish order event", entry.Message)
}

func TestOrderService_PublishDoesNotHoldRequest(t *testing.T) {
	tests := []struct {
		name   string
		reqCtx func() context.Context
	}{
		{name: "broker never answers", reqCtx: context.Background},
		{
			name: "request already cancelled",
			reqCtx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var liveOnEntry bool
			mockPub := mocks.NewEventPublisher(t)
			mockPub.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				liveOnEntry = ctx.Err() == nil
				<-ctx.Done()
			}).Return(context.DeadlineExceeded).Once()

			svc := service.NewOrderService(storage.NewOrderStore(1000), newCatalog(t),
				service.WithPublisher(mockPub),
				service.WithPublishTimeout(50*time.Millisecond),
				service.WithLogger(quietLogger()),
			)

			start := time.Now()
			order, err := svc.Create(testCase.reqCtx(), sushiRequest())
			require.NoError(t, err)

			assert.Less(t, time.Since(start), 2*time.Second)
			assert.True(t, liveOnEntry)
			_, err = svc.Get(order.ID)
			assert.NoError(t, err)
		})
	}
}

func TestOrderService_UpdateStatusPermissive(t *testing.T) {
	mockPub := mocks.NewEventPublisher(t)
	mockPub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated
	})).Return(nil).Once()
	mockPub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderStatusChanged && e.Status == domain.StatusDelivered &&
			e.PreviousStatus == domain.StatusPending
	})).Return(nil).Once()
	mockPub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderStatusChanged && e.Status == domain.StatusCancelled &&
			e.PreviousStatus == domain.StatusDelivered
	})).Return(nil).Once()

	svc := service.NewOrderService(storage.NewOrderStore(1000), newCatalog(t),
		service.WithPublisher(mockPub),
		service.WithLogger(quietLogger()),
	)
	order, err := svc.Create(context.Background(), sushiRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.StatusDelivered)
	require.NoError(t, err)
	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, order.CreatedAt, updated.CreatedAt)
	assert.Equal(t, order.Total, updated.Total)
}

func TestOrderService_UpdateStatusNotFound(t *testing.T) {
	mockRepo := mocks.NewOrderRepository(t)
	mockRepo.On("Update", 42, mock.Anything).Return(domain.Order{}, domain.ErrOrderNotFound).Once()
	mockPub := mocks.NewEventPublisher(t)

	svc := service.NewOrderService(mockRepo, newCatalog(t), service.WithPublisher(mockPub))

	_, err := svc.UpdateStatus(context.Background(), 42, domain.StatusPreparing)

	assert.True(t, domain.IsNotFound(err))
	mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatusStrict(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		to      domain.Status
		wantErr bool
	}{
		{name: "pending to preparing", from: domain.StatusPending, to: domain.StatusPreparing},
		{name: "pending to cancelled", from: domain.StatusPending, to: domain.StatusCancelled},
		{name: "preparing to out for delivery", from: domain.StatusPreparing, to: domain.StatusOutForDelivery},
		{name: "out for delivery to delivered", from: domain.StatusOutForDelivery, to: domain.StatusDelivered},
		{name: "pending to delivered", from: domain.StatusPending, to: domain.StatusDelivered, wantErr: true},
		{name: "delivered to cancelled", from: domain.StatusDelivered, to: domain.StatusCancelled, wantErr: true},
		{name: "cancelled to pending", from: domain.StatusCancelled, to: domain.StatusPending, wantErr: true},
		{name: "unknown status", from: domain.StatusPending, to: "teleported", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			stored := domain.Order{ID: 1000, RestaurantID: 1, Status: testCase.from}
			mockRepo := mocks.NewOrderRepository(t)
			mockRepo.On("Update", 1000, mock.Anything).Return(stored, nil).Once()

			svc := service.NewOrderService(mockRepo, newCatalog(t),
				service.WithTransitionPolicy(service.DefaultStrictTransitions),
				service.WithLogger(quietLogger()),
			)

			updated, err := svc.UpdateStatus(context.Background(), 1000, testCase.to)

			if testCase.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.to, updated.Status)
			}
		})
	}
}

func TestOrderService_Receipt(t *testing.T) {
	mockRepo := mocks.NewOrderRepository(t)
	mockRepo.On("Get", 1000).Return(domain.Order{ID: 1000}, nil).Once()
	mockRepo.On("Get", 999).Return(domain.Order{}, domain.ErrOrderNotFound).Once()
	mockQR := new(mocks.QRGenerator)
	mockQR.On("Generate", 1000).Return([]byte("qr"), nil).Once()

	svc := service.NewOrderService(mockRepo, newCatalog(t), service.WithQRGenerator(mockQR))

	png, err := svc.Receipt(1000)
	require.NoError(t, err)
	assert.Equal(t, []byte("qr"), png)

	_, err = svc.Receipt(999)
	assert.True(t, domain.IsNotFound(err))
	mockQR.AssertExpectations(t)
}

func TestOrderService_ReceiptDisabled(t *testing.T) {
	store := storage.NewOrderStore(1000)
	store.Put(domain.Order{ID: 1000})
	svc := service.NewOrderService(store, newCatalog(t))

	_, err := svc.Receipt(1000)
	assert.ErrorIs(t, err, service.ErrReceiptsDisabled)
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{BaseURL: "http://localhost:3001/"}
	qr, err := gen.Generate(1000)

	assert.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), qr[:4])
}

func TestParsePolicies(t *testing.T) {
	p, err := service.ParsePricingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, service.PricingTrust, p)

	p, err = service.ParsePricingPolicy("catalog")
	require.NoError(t, err)
	assert.Equal(t, service.PricingCatalog, p)

	_, err = service.ParsePricingPolicy("free")
	assert.Error(t, err)

	tp, err := service.ParseTransitionPolicy("strict")
	require.NoError(t, err)
	assert.False(t, tp.Allow(domain.StatusDelivered, domain.StatusCancelled))

	tp, err = service.ParseTransitionPolicy("")
	require.NoError(t, err)
	assert.True(t, tp.Allow(domain.StatusDelivered, domain.StatusCancelled))

	_, err = service.ParseTransitionPolicy("chaotic")
	assert.Error(t, err)
}
