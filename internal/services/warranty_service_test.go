package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
)

// fakeStore is an in-memory WarrantyStore. WithTx snapshots the maps before
// running the callback and restores them on error, so rollback behaviour is
// observable in tests.
type fakeStore struct {
	customers map[string]*models.Customer
	batteries map[string]*models.Battery
	scrap     map[string]*models.ScrapBattery
	exchanges []*models.Exchange
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: make(map[string]*models.Customer),
		batteries: make(map[string]*models.Battery),
		scrap:     make(map[string]*models.ScrapBattery),
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.TxStore) error) error {
	customers := make(map[string]*models.Customer, len(f.customers))
	for k, v := range f.customers {
		c := *v
		customers[k] = &c
	}
	batteries := make(map[string]*models.Battery, len(f.batteries))
	for k, v := range f.batteries {
		b := *v
		batteries[k] = &b
	}
	scrap := make(map[string]*models.ScrapBattery, len(f.scrap))
	for k, v := range f.scrap {
		s := *v
		scrap[k] = &s
	}
	exchanges := make([]*models.Exchange, len(f.exchanges))
	copy(exchanges, f.exchanges)
	nextID := f.nextID

	if err := fn(ctx, (*fakeTx)(f)); err != nil {
		f.customers = customers
		f.batteries = batteries
		f.scrap = scrap
		f.exchanges = exchanges
		f.nextID = nextID
		return err
	}
	return nil
}

type fakeTx fakeStore

func (f *fakeTx) GetCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	c, ok := f.customers[phone]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeTx) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if _, ok := f.customers[c.Phone]; ok {
		return repositories.ErrDuplicateSerial
	}
	copied := *c
	f.customers[c.Phone] = &copied
	return nil
}

func (f *fakeTx) UpdateCustomerName(ctx context.Context, phone, name string) error {
	if c, ok := f.customers[phone]; ok {
		c.Name = name
	}
	return nil
}

func (f *fakeTx) GetBattery(ctx context.Context, serial string) (*models.Battery, error) {
	b, ok := f.batteries[serial]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeTx) CreateBattery(ctx context.Context, b *models.Battery) error {
	if _, ok := f.batteries[b.SerialNo]; ok {
		return repositories.ErrDuplicateSerial
	}
	copied := *b
	f.batteries[b.SerialNo] = &copied
	return nil
}

func (f *fakeTx) UpdateBattery(ctx context.Context, b *models.Battery) error {
	copied := *b
	f.batteries[b.SerialNo] = &copied
	return nil
}

func (f *fakeTx) SetBatteryStatus(ctx context.Context, serial, status string) error {
	if b, ok := f.batteries[serial]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeTx) CreateScrap(ctx context.Context, s *models.ScrapBattery) error {
	if _, ok := f.scrap[s.SerialNo]; ok {
		return repositories.ErrDuplicateSerial
	}
	copied := *s
	f.scrap[s.SerialNo] = &copied
	return nil
}

func (f *fakeTx) AppendExchange(ctx context.Context, e *models.Exchange) error {
	f.nextID++
	e.ID = f.nextID
	copied := *e
	f.exchanges = append(f.exchanges, &copied)
	return nil
}

func (f *fakeStore) exchangesByAction(action string) []*models.Exchange {
	var out []*models.Exchange
	for _, e := range f.exchanges {
		if e.ActionTaken == action {
			out = append(out, e)
		}
	}
	return out
}

func TestProcessNewBatteryExchange(t *testing.T) {
	store := newFakeStore()
	store.batteries["OLD123"] = &models.Battery{SerialNo: "OLD123", Status: models.StatusPending}
	svc := NewWarrantyService(store)

	err := svc.ProcessNewBatteryExchange(context.Background(), &models.NewExchangeRequest{
		CustomerPhone: "9876543210",
		CustomerName:  "Ravi Kumar",
		OldSerial:     "OLD123",
		NewSerial:     "NEW456",
		NewModel:      "MTRED45L",
		TicketID:      "T-1001",
		VehicleNo:     "UP32 AB 1234",
		PurchaseDate:  "2026-08-15",
		Notes:         "under warranty",
	})
	require.NoError(t, err)

	require.Equal(t, models.StatusReturnedFaulty, store.batteries["OLD123"].Status)

	newBattery := store.batteries["NEW456"]
	require.NotNil(t, newBattery)
	require.Equal(t, models.StatusSold, newBattery.Status)
	require.NotNil(t, newBattery.CurrentOwnerPhone)
	require.Equal(t, "9876543210", *newBattery.CurrentOwnerPhone)
	require.Equal(t, "MTRED45L", newBattery.ModelType)

	rows := store.exchangesByAction(models.ActionNewReplacementIssued)
	require.Len(t, rows, 1)
	require.Equal(t, "OLD123", rows[0].OldBatterySerial)
	require.NotNil(t, rows[0].NewBatterySerial)
	require.Equal(t, "NEW456", *rows[0].NewBatterySerial)
	require.True(t, strings.HasPrefix(rows[0].Notes, "Ticket: T-1001."))

	require.Equal(t, "Ravi Kumar", store.customers["9876543210"].Name)
}

func TestProcessNewBatteryExchangeUnknownOldSerial(t *testing.T) {
	store := newFakeStore()
	svc := NewWarrantyService(store)

	err := svc.ProcessNewBatteryExchange(context.Background(), &models.NewExchangeRequest{
		CustomerPhone: "9876543210",
		CustomerName:  "Ravi Kumar",
		OldSerial:     "BOUGHT-ELSEWHERE",
		NewSerial:     "NEW456",
		NewModel:      "MTRED45L",
		TicketID:      "T-1002",
		PurchaseDate:  "2026-08-15",
	})
	require.NoError(t, err)

	_, exists := store.batteries["BOUGHT-ELSEWHERE"]
	require.False(t, exists, "unknown old serial must not be created")
	require.Len(t, store.exchangesByAction(models.ActionNewReplacementIssued), 1)
}

func TestProcessServiceEntryUpsertsInPlace(t *testing.T) {
	store := newFakeStore()
	svc := NewWarrantyService(store)

	req := &models.ServiceEntryRequest{
		CustomerPhone: "9876543210",
		CustomerName:  "Ravi Kumar",
		BatterySerial: "OLD123",
		TicketID:      "T-2001",
		VehicleNo:     "UP32 AB 1234",
		PurchaseDate:  "2026-01-10",
		Notes:         "first visit",
		HasLoaner:     true,
	}
	require.NoError(t, svc.ProcessServiceEntry(context.Background(), req))

	req.Notes = "second visit"
	require.NoError(t, svc.ProcessServiceEntry(context.Background(), req))

	require.Len(t, store.batteries, 1, "battery row must be updated in place")
	battery := store.batteries["OLD123"]
	require.Equal(t, models.StatusPending, battery.Status)
	require.True(t, battery.HasLoaner)

	rows := store.exchangesByAction(models.ActionServicePending)
	require.Len(t, rows, 2, "audit log grows one row per call")
	require.Equal(t, "OLD123", rows[0].OldBatterySerial)
	require.Equal(t, "OLD123", *rows[0].NewBatterySerial)
}

func TestProcessReturnToCustomer(t *testing.T) {
	store := newFakeStore()
	svc := NewWarrantyService(store)

	err := svc.ProcessReturnToCustomer(context.Background(), "MISSING", "9876543210", false)
	require.ErrorIs(t, err, repositories.ErrNotFound)
	require.Empty(t, store.exchanges, "failed return must not log")

	store.batteries["OLD123"] = &models.Battery{
		SerialNo: "OLD123", Status: models.StatusReadyForPickup, HasLoaner: true,
	}
	require.NoError(t, svc.ProcessReturnToCustomer(context.Background(), "OLD123", "9876543210", true))

	require.Equal(t, models.StatusActiveWithCustomer, store.batteries["OLD123"].Status)
	require.True(t, store.batteries["OLD123"].HasLoaner, "loaner flag stays set on return")

	rows := store.exchangesByAction(models.ActionReturnedToCustomer)
	require.Len(t, rows, 1)
	require.Contains(t, rows[0].Notes, "Loaner battery collected back")
	require.Nil(t, rows[0].NewBatterySerial)
}

func TestProcessStockReception(t *testing.T) {
	store := newFakeStore()
	store.batteries["SER1"] = &models.Battery{SerialNo: "SER1", Status: models.StatusFactoryPending}
	svc := NewWarrantyService(store)

	require.NoError(t, svc.ProcessStockReception(context.Background(), "SER1", "MTRED45L"))
	require.Equal(t, models.StatusInStock, store.batteries["SER1"].Status)

	// Unknown serial still logs the receipt.
	require.NoError(t, svc.ProcessStockReception(context.Background(), "SER2", "MTBLACK35"))
	_, exists := store.batteries["SER2"]
	require.False(t, exists)

	rows := store.exchangesByAction(models.ActionStockReceived)
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, models.FactoryPhone, row.CustomerPhone)
	}
	require.Equal(t, "Received stock: MTBLACK35", rows[1].Notes)
}

func TestUpdateBatteryStatus(t *testing.T) {
	store := newFakeStore()
	store.batteries["SER1"] = &models.Battery{SerialNo: "SER1", Status: models.StatusPending}
	svc := NewWarrantyService(store)

	require.ErrorIs(t, svc.UpdateBatteryStatus(context.Background(), "SER1", "melted"), ErrUnknownStatus)
	require.ErrorIs(t, svc.UpdateBatteryStatus(context.Background(), "MISSING", models.StatusReplaced), repositories.ErrNotFound)

	require.NoError(t, svc.UpdateBatteryStatus(context.Background(), "SER1", models.StatusReadyForPickup))
	require.Equal(t, models.StatusReadyForPickup, store.batteries["SER1"].Status)
}

func TestAddInventoryStockDuplicate(t *testing.T) {
	store := newFakeStore()
	svc := NewWarrantyService(store)

	require.NoError(t, svc.AddInventoryStock(context.Background(), "SER1", "MTRED45L", "2026-08-01"))

	err := svc.AddInventoryStock(context.Background(), "SER1", "MTBLACK35", "2026-08-20")
	require.ErrorIs(t, err, repositories.ErrDuplicateSerial)
	require.Equal(t, "MTRED45L", store.batteries["SER1"].ModelType, "original row must be unchanged")
	require.Equal(t, "2026-08-01", store.batteries["SER1"].DateOfPurchase)
}

func TestUpsertBatteryPartialUpdate(t *testing.T) {
	store := newFakeStore()
	store.batteries["SER1"] = &models.Battery{
		SerialNo:       "SER1",
		ModelType:      "MTRED45L",
		Status:         models.StatusInStock,
		DateOfPurchase: "2026-01-01",
	}
	svc := NewWarrantyService(store)

	err := svc.UpsertBattery(context.Background(), "SER1", "IGNORED", models.StatusFactoryPending,
		"", "", "9876543210", "T-3001", "UP32 AB 1234")
	require.NoError(t, err)

	battery := store.batteries["SER1"]
	require.Equal(t, "MTRED45L", battery.ModelType, "model is not touched on update")
	require.Equal(t, "2026-01-01", battery.DateOfPurchase, "purchase date kept when none supplied")
	require.Equal(t, models.StatusFactoryPending, battery.Status)
	require.Equal(t, "T-3001", battery.TicketID)

	err = svc.UpsertBattery(context.Background(), "SER1", "IGNORED", models.StatusFactoryPending,
		"", "2026-08-30", "9876543210", "T-3001", "UP32 AB 1234")
	require.NoError(t, err)
	require.Equal(t, "2026-08-30", store.batteries["SER1"].DateOfPurchase)

	err = svc.UpsertBattery(context.Background(), "SER2", "MTBLACK35", models.StatusFactoryPending,
		"2026-08-30", "2026-08-30", "9876543210", "T-3002", "")
	require.NoError(t, err)
	require.Equal(t, "MTBLACK35", store.batteries["SER2"].ModelType)
}

func TestCustomerNameLastWriteWins(t *testing.T) {
	store := newFakeStore()
	svc := NewWarrantyService(store)

	req := &models.ServiceEntryRequest{
		CustomerPhone: "9876543210",
		CustomerName:  "R. Kumar",
		BatterySerial: "SER1",
		TicketID:      "T-4001",
		PurchaseDate:  "2026-01-10",
	}
	require.NoError(t, svc.ProcessServiceEntry(context.Background(), req))

	req.CustomerName = "Ravi Kumar"
	require.NoError(t, svc.ProcessServiceEntry(context.Background(), req))

	require.Len(t, store.customers, 1)
	require.Equal(t, "Ravi Kumar", store.customers["9876543210"].Name)
}
