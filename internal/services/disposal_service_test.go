package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ativ97/battery-management/internal/models"
)

// fakeScrapStore mirrors the three disposal tables in memory with the same
// delete+insert move semantics as the SQL implementation.
type fakeScrapStore struct {
	scrap   map[string]*models.ScrapBattery
	challan map[string]*models.ChallanBattery
	archive map[string]*models.ArchivedScrapBattery
}

func newFakeScrapStore() *fakeScrapStore {
	return &fakeScrapStore{
		scrap:   make(map[string]*models.ScrapBattery),
		challan: make(map[string]*models.ChallanBattery),
		archive: make(map[string]*models.ArchivedScrapBattery),
	}
}

func (f *fakeScrapStore) ListScrap(ctx context.Context) ([]*models.ScrapBattery, error) {
	var out []*models.ScrapBattery
	for _, s := range f.scrap {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeScrapStore) ListChallan(ctx context.Context) ([]*models.ChallanBattery, error) {
	var out []*models.ChallanBattery
	for _, c := range f.challan {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeScrapStore) ListArchive(ctx context.Context) ([]*models.ArchivedScrapBattery, error) {
	var out []*models.ArchivedScrapBattery
	for _, a := range f.archive {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeScrapStore) MoveScrapToChallan(ctx context.Context, serials []string, challanDate string) (int, error) {
	moved := 0
	for _, serial := range serials {
		s, ok := f.scrap[serial]
		if !ok {
			continue
		}
		f.challan[serial] = &models.ChallanBattery{
			SerialNo:      s.SerialNo,
			ModelType:     s.ModelType,
			ReceivedDate:  s.ReceivedDate,
			CustomerPhone: s.CustomerPhone,
			TicketID:      s.TicketID,
			Notes:         s.Notes,
			ChallanDate:   challanDate,
		}
		delete(f.scrap, serial)
		moved++
	}
	return moved, nil
}

func (f *fakeScrapStore) ClearChallanToArchive(ctx context.Context, finalDate string) (int, error) {
	moved := 0
	for serial, c := range f.challan {
		f.archive[serial] = &models.ArchivedScrapBattery{
			SerialNo:          c.SerialNo,
			ModelType:         c.ModelType,
			ReceivedDate:      c.ReceivedDate,
			CustomerPhone:     c.CustomerPhone,
			TicketID:          c.TicketID,
			Notes:             c.Notes,
			ChallanDate:       c.ChallanDate,
			FinalArchivedDate: finalDate,
		}
		delete(f.challan, serial)
		moved++
	}
	return moved, nil
}

func TestRegisterScrap(t *testing.T) {
	scrapStore := newFakeScrapStore()
	store := newFakeStore()
	store.batteries["SCR1"] = &models.Battery{SerialNo: "SCR1", Status: models.StatusPending}
	svc := NewDisposalService(scrapStore, store)

	err := svc.RegisterScrap(context.Background(), &models.RegisterScrapRequest{
		SerialNo:      "SCR1",
		ModelType:     "MTRED45L",
		CustomerPhone: "9876543210",
		TicketID:      "T-5001",
		Notes:         "cell dead",
	})
	require.NoError(t, err)

	require.Equal(t, models.StatusReturnedFaulty, store.batteries["SCR1"].Status)
	require.NotNil(t, store.scrap["SCR1"])
	require.NotEmpty(t, store.scrap["SCR1"].ReceivedDate)

	rows := store.exchangesByAction(models.ActionMarkedFaulty)
	require.Len(t, rows, 1)
	require.Equal(t, "SCR1", rows[0].OldBatterySerial)
}

func TestRegisterScrapDuplicateRollsBack(t *testing.T) {
	scrapStore := newFakeScrapStore()
	store := newFakeStore()
	store.batteries["SCR1"] = &models.Battery{SerialNo: "SCR1", Status: models.StatusPending}
	store.scrap["SCR1"] = &models.ScrapBattery{SerialNo: "SCR1"}
	svc := NewDisposalService(scrapStore, store)

	err := svc.RegisterScrap(context.Background(), &models.RegisterScrapRequest{
		SerialNo: "SCR1",
	})
	require.Error(t, err)

	// The whole transaction rolled back: status change undone, nothing logged.
	require.Equal(t, models.StatusPending, store.batteries["SCR1"].Status)
	require.Empty(t, store.exchanges)
}

func TestMoveScrapToChallanThenClear(t *testing.T) {
	scrapStore := newFakeScrapStore()
	scrapStore.scrap["S1"] = &models.ScrapBattery{SerialNo: "S1", ModelType: "MTRED45L", ReceivedDate: "2026-08-01"}
	scrapStore.scrap["S2"] = &models.ScrapBattery{SerialNo: "S2", ModelType: "MTBLACK35", ReceivedDate: "2026-08-02"}
	scrapStore.scrap["S3"] = &models.ScrapBattery{SerialNo: "S3"}
	svc := NewDisposalService(scrapStore, newFakeStore())

	moved, err := svc.MoveScrapToChallan(context.Background(), []string{"S1", "S2", "UNKNOWN"})
	require.NoError(t, err)
	require.Equal(t, 2, moved)

	require.NotContains(t, scrapStore.scrap, "S1")
	require.NotContains(t, scrapStore.scrap, "S2")
	require.Contains(t, scrapStore.scrap, "S3", "unselected scrap stays put")
	require.NotEmpty(t, scrapStore.challan["S1"].ChallanDate)

	cleared, err := svc.ClearChallanToArchive(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, cleared)

	require.Empty(t, scrapStore.challan)
	require.Len(t, scrapStore.archive, 2)
	require.NotEmpty(t, scrapStore.archive["S1"].FinalArchivedDate)
	require.NotEmpty(t, scrapStore.archive["S2"].FinalArchivedDate)
}

func TestMoveScrapToChallanEmptySelection(t *testing.T) {
	svc := NewDisposalService(newFakeScrapStore(), newFakeStore())

	_, err := svc.MoveScrapToChallan(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoScrapSelected)
}

func TestChallanPDF(t *testing.T) {
	scrapStore := newFakeScrapStore()
	scrapStore.challan["S1"] = &models.ChallanBattery{
		SerialNo: "S1", ModelType: "MTRED45L", ReceivedDate: "2026-08-01", ChallanDate: "2026-08-20",
	}
	svc := NewDisposalService(scrapStore, newFakeStore())

	pdf, err := svc.ChallanPDF(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	require.Equal(t, "%PDF", string(pdf[:4]))
}
