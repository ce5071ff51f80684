package services

import (
	"fmt"

	"github.com/ativ97/battery-management/internal/timeutil"
)

// BatteryAge describes how long ago a battery was purchased, for display
// on the service counter. Malformed input degrades to a sentinel string
// instead of an error.
func BatteryAge(purchaseDate string) string {
	if purchaseDate == "" {
		return "N/A"
	}

	parsed, err := timeutil.ParseDate(purchaseDate)
	if err != nil {
		return "Invalid Date"
	}

	days := int(timeutil.Now().Sub(parsed).Hours() / 24)
	months := days / 30
	remaining := days % 30
	return fmt.Sprintf("%d days (~%d months, %d days)", days, months, remaining)
}
