package models

// The disposal pipeline moves a battery row through three tables of the
// same shape family: scrap_batteries -> challan_batteries ->
// audit_scrap_batteries. Each hop is a delete+insert pair inside one
// transaction, gaining a date column per stage.

// ScrapBattery is a returned-faulty unit booked for disposal.
type ScrapBattery struct {
	SerialNo      string `json:"serial_no"`
	ModelType     string `json:"model_type"`
	ReceivedDate  string `json:"received_date"`
	CustomerPhone string `json:"customer_phone"`
	TicketID      string `json:"ticket_id"`
	Notes         string `json:"notes"`
}

// ChallanBattery is a scrap unit staged onto a transport challan.
type ChallanBattery struct {
	SerialNo      string `json:"serial_no"`
	ModelType     string `json:"model_type"`
	ReceivedDate  string `json:"received_date"`
	CustomerPhone string `json:"customer_phone"`
	TicketID      string `json:"ticket_id"`
	Notes         string `json:"notes"`
	ChallanDate   string `json:"challan_date"`
}

// ArchivedScrapBattery is the terminal bookkeeping record of a disposed unit.
type ArchivedScrapBattery struct {
	SerialNo          string `json:"serial_no"`
	ModelType         string `json:"model_type"`
	ReceivedDate      string `json:"received_date"`
	CustomerPhone     string `json:"customer_phone"`
	TicketID          string `json:"ticket_id"`
	Notes             string `json:"notes"`
	ChallanDate       string `json:"challan_date"`
	FinalArchivedDate string `json:"final_archived_date"`
}

// RegisterScrapRequest represents the request body for booking a unit as scrap
type RegisterScrapRequest struct {
	SerialNo      string `json:"serial_no"`
	ModelType     string `json:"model_type"`
	CustomerPhone string `json:"customer_phone"`
	TicketID      string `json:"ticket_id"`
	Notes         string `json:"notes"`
}

// MoveToChallanRequest represents the request body for staging scrap onto a challan
type MoveToChallanRequest struct {
	Serials []string `json:"serials"`
}
