package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). The shop operates in
// IST and every stored date string is an IST calendar date.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		IST = time.FixedZone("IST", 5*60*60+30*60) // UTC+5:30
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns the current IST calendar date as YYYY-MM-DD text, the form
// every date column in the schema uses.
func Today() string {
	return Now().Format(DateLayout)
}

// Stamp returns the current IST time as "YYYY-MM-DD HH:MM:SS" text, the
// form exchange timestamps use.
func Stamp() string {
	return Now().Format(DateTimeLayout)
}

// ParseDate parses a YYYY-MM-DD date string in IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

// Layouts for the text date columns.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
