package models

// LoginRequest carries the single shared operator credential pair.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful operator login.
type LoginResponse struct {
	Token string `json:"token"`
}

// SendOTPRequest starts a verification session for a workflow.
type SendOTPRequest struct {
	Phone    string `json:"phone"`
	Serial   string `json:"serial"`
	Workflow string `json:"workflow"` // "claim" or "pickup"
}

// SendOTPResponse identifies the verification session the OTP belongs to.
type SendOTPResponse struct {
	SessionID       string `json:"session_id"`
	WarrantyExpired bool   `json:"warranty_expired,omitempty"`
	WarrantyExpiry  string `json:"warranty_expiry,omitempty"`
}

// VerifyOTPRequest submits the customer's code for a session.
type VerifyOTPRequest struct {
	SessionID string `json:"session_id"`
	OTP       string `json:"otp"`
}

// NewExchangeRequest represents the request body for issuing a replacement.
type NewExchangeRequest struct {
	SessionID     string `json:"session_id"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
	OldSerial     string `json:"old_serial"`
	NewSerial     string `json:"new_serial"`
	NewModel      string `json:"new_model"`
	TicketID      string `json:"ticket_id"`
	VehicleNo     string `json:"vehicle_no"`
	PurchaseDate  string `json:"purchase_date"`
	Notes         string `json:"notes"`
}

// ServiceEntryRequest represents the request body for keeping a unit in service.
type ServiceEntryRequest struct {
	SessionID     string `json:"session_id"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
	BatterySerial string `json:"battery_serial"`
	TicketID      string `json:"ticket_id"`
	VehicleNo     string `json:"vehicle_no"`
	PurchaseDate  string `json:"purchase_date"`
	Notes         string `json:"notes"`
	HasLoaner     bool   `json:"has_loaner"`
}

// ReturnRequest represents the request body for returning a unit to its owner.
type ReturnRequest struct {
	SessionID    string `json:"session_id"`
	SerialNo     string `json:"serial_no"`
	Phone        string `json:"phone"`
	ReturnLoaner bool   `json:"return_loaner"`
}

// StockReceptionRequest represents the request body for marking factory stock received.
type StockReceptionRequest struct {
	SerialNo  string `json:"serial_no"`
	ModelType string `json:"model_type"`
}

// ExchangeSummary is the projection the presentation layer renders as the
// printed transaction receipt. The engine only supplies the data.
type ExchangeSummary struct {
	CustomerName string `json:"customer_name"`
	VehicleNo    string `json:"vehicle_no"`
	NewSerial    string `json:"new_serial"`
	OldSerial    string `json:"old_serial"`
	TicketID     string `json:"ticket_id"`
	NewModel     string `json:"new_model"`
	PurchaseDate string `json:"purchase_date"`
	Notes        string `json:"notes"`
	GeneratedAt  string `json:"generated_at"`
}

// DashboardStats mirrors the three dashboard metric tiles.
type DashboardStats struct {
	TotalCustomers    int `json:"total_customers"`
	BatteriesReplaced int `json:"batteries_replaced"`
	ExchangesDone     int `json:"exchanges_done"`
}
