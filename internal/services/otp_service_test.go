package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ativ97/battery-management/internal/cache"
	"github.com/ativ97/battery-management/internal/models"
	"github.com/ativ97/battery-management/internal/repositories"
)

type fakeSMS struct {
	phone string
	otp   string
}

func (f *fakeSMS) SendOTP(phone, otp string) error {
	f.phone = phone
	f.otp = otp
	return nil
}

type fakeBatteryLookup struct {
	batteries map[string]*models.Battery
}

func (f *fakeBatteryLookup) GetBySerial(ctx context.Context, serial string) (*models.Battery, error) {
	b, ok := f.batteries[serial]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return b, nil
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 1000; i++ {
		otp := GenerateOTP()
		require.Len(t, otp, 4)
		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 1000)
		require.LessOrEqual(t, n, 9999)
	}
}

func TestSendAndVerifyOTP(t *testing.T) {
	smsProvider := &fakeSMS{}
	svc := NewOTPService(cache.NewSessionStore(), smsProvider, &fakeBatteryLookup{})

	resp, err := svc.SendOTP(context.Background(), &models.SendOTPRequest{
		Phone:    "9876543210",
		Workflow: "pickup",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, "9876543210", smsProvider.phone)
	require.Len(t, smsProvider.otp, 4)

	ok, err := svc.VerifyOTP(context.Background(), resp.SessionID, "0000")
	require.NoError(t, err)
	require.False(t, ok, "wrong code must not verify")

	_, err = svc.RequireVerified(context.Background(), resp.SessionID)
	require.ErrorIs(t, err, ErrSessionNotVerified)

	ok, err = svc.VerifyOTP(context.Background(), resp.SessionID, smsProvider.otp)
	require.NoError(t, err)
	require.True(t, ok)

	sess, err := svc.RequireVerified(context.Background(), resp.SessionID)
	require.NoError(t, err)
	require.Equal(t, "9876543210", sess.Phone)

	// No attempt cap: a wrong code after a match still answers honestly.
	ok, err = svc.VerifyOTP(context.Background(), resp.SessionID, "0000")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyOTPUnknownSession(t *testing.T) {
	svc := NewOTPService(cache.NewSessionStore(), &fakeSMS{}, &fakeBatteryLookup{})

	_, err := svc.VerifyOTP(context.Background(), "nope", "1234")
	require.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestSendOTPWarrantyCheck(t *testing.T) {
	lookup := &fakeBatteryLookup{batteries: map[string]*models.Battery{
		"EXP1": {SerialNo: "EXP1", WarrantyExpiry: "2020-01-01"},
		"OK1":  {SerialNo: "OK1", WarrantyExpiry: "2099-01-01"},
	}}
	svc := NewOTPService(cache.NewSessionStore(), &fakeSMS{}, lookup)

	resp, err := svc.SendOTP(context.Background(), &models.SendOTPRequest{
		Phone: "9876543210", Serial: "EXP1", Workflow: "claim",
	})
	require.NoError(t, err)
	require.True(t, resp.WarrantyExpired)
	require.Equal(t, "2020-01-01", resp.WarrantyExpiry)

	resp, err = svc.SendOTP(context.Background(), &models.SendOTPRequest{
		Phone: "9876543210", Serial: "OK1", Workflow: "claim",
	})
	require.NoError(t, err)
	require.False(t, resp.WarrantyExpired)

	// Unknown serial on a claim is not an error; the operator decides.
	resp, err = svc.SendOTP(context.Background(), &models.SendOTPRequest{
		Phone: "9876543210", Serial: "NOPE", Workflow: "claim",
	})
	require.NoError(t, err)
	require.False(t, resp.WarrantyExpired)
}
