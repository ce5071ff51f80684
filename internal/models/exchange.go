package models

// Exchange action values, one per lifecycle operation that writes the log.
const (
	ActionNewReplacementIssued = "NEW_REPLACEMENT_ISSUED"
	ActionServicePending       = "SERVICE_PENDING"
	ActionReturnedToCustomer   = "RETURNED_TO_CUSTOMER"
	ActionStockReceived        = "STOCK_RECEIVED"
	ActionMarkedFaulty         = "MARKED_FAULTY"
)

// FactoryPhone is the customer_phone literal recorded for supplier-side
// exchange rows, which have no real customer behind them.
const FactoryPhone = "EXIDE_FACTORY"

// Exchange is one append-only audit row. Rows are never updated or deleted
// once written; the only thing that removes them is the full database reset.
// Date is text in "YYYY-MM-DD HH:MM:SS" form. NewBatterySerial is nil for
// actions that involve a single unit (returns, stock receipts); for service
// entries old and new both carry the serviced serial, meaning "same unit
// retained, no replacement".
type Exchange struct {
	ID               int     `json:"id"`
	Date             string  `json:"date"`
	OldBatterySerial string  `json:"old_battery_serial"`
	NewBatterySerial *string `json:"new_battery_serial"`
	CustomerPhone    string  `json:"customer_phone"`
	ActionTaken      string  `json:"action_taken"`
	Notes            string  `json:"notes"`
}
