package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ativ97/battery-management/internal/timeutil"
)

func TestBatteryAge(t *testing.T) {
	require.Equal(t, "N/A", BatteryAge(""))
	require.Equal(t, "Invalid Date", BatteryAge("not-a-date"))
	require.Equal(t, "Invalid Date", BatteryAge("2026-13-45"))

	// 100 days back from today, whatever today is.
	d := timeutil.Now().AddDate(0, 0, -100)
	got := BatteryAge(d.Format(timeutil.DateLayout))
	require.Equal(t, "100 days (~3 months, 10 days)", got)

	today := timeutil.Today()
	require.Equal(t, "0 days (~0 months, 0 days)", BatteryAge(today))
}

func TestBatteryAgeDayCount(t *testing.T) {
	for _, days := range []int{1, 29, 30, 31, 365} {
		d := timeutil.Now().AddDate(0, 0, -days)
		got := BatteryAge(d.Format(timeutil.DateLayout))
		want := fmt.Sprintf("%d days (~%d months, %d days)", days, days/30, days%30)
		require.Equal(t, want, got)
	}
}
