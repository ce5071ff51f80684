package models

// Battery status values. Transitions are deliberately permissive: the shop
// floor moves units between states in whatever order the day demands, so the
// engine only checks that the target value is one of these.
const (
	StatusInStock            = "in_stock"
	StatusFactoryPending     = "factory_pending"
	StatusPending            = "pending"
	StatusReadyForPickup     = "ready_for_pickup"
	StatusReturnedFaulty     = "returned_faulty"
	StatusActiveWithCustomer = "active_with_customer"
	StatusSold               = "sold"
	StatusReplaced           = "replaced"
)

// KnownStatuses lists every persistable battery status. "issue_replacement"
// is a UI selector value only and never reaches the store.
var KnownStatuses = []string{
	StatusInStock,
	StatusFactoryPending,
	StatusPending,
	StatusReadyForPickup,
	StatusReturnedFaulty,
	StatusActiveWithCustomer,
	StatusSold,
	StatusReplaced,
}

// IsKnownStatus reports whether s is a persistable battery status.
func IsKnownStatus(s string) bool {
	for _, known := range KnownStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Battery is a battery record keyed by serial number. All date fields are
// plain text in YYYY-MM-DD form so that string ordering matches calendar
// ordering across the whole schema.
type Battery struct {
	SerialNo          string  `json:"serial_no"`
	ModelType         string  `json:"model_type"`
	Status            string  `json:"status"`
	SoldDate          string  `json:"sold_date"`
	DateOfPurchase    string  `json:"date_of_purchase"`
	WarrantyExpiry    string  `json:"warranty_expiry"`
	CurrentOwnerPhone *string `json:"current_owner_phone"`
	TicketID          string  `json:"ticket_id"`
	VehicleNo         string  `json:"vehicle_no"`
	HasLoaner         bool    `json:"has_loaner"`
}

// AddStockRequest represents the request body for adding inventory stock
type AddStockRequest struct {
	SerialNo       string `json:"serial_no"`
	ModelType      string `json:"model_type"`
	DateOfPurchase string `json:"date_of_purchase"`
}

// StockLoanRequest represents the request body for the factory stock-loan flow
type StockLoanRequest struct {
	SerialNo  string `json:"serial_no"`
	ModelType string `json:"model_type"`
	Date      string `json:"date"`
}

// UpdateStatusRequest represents the request body for a direct status change
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
