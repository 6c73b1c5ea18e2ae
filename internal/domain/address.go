package domain

type Address struct {
	ID          int64  `json:"id,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PhoneNumber string `json:"phoneNumber"`
	IsDefault   bool   `json:"isDefault"`
}
