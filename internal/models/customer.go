package models

// Customer is keyed by phone number; at most one identity per phone. The
// name is last-write-wins on repeat contact. CreatedAt is a YYYY-MM-DD
// text date like every other date in the schema.
type Customer struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
