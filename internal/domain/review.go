package domain

import "time"

type Review struct {
	ID        int64     `json:"id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	Username  string    `json:"username,omitempty"`
	ProductID int64     `json:"productId,omitempty"`
	UserID    int64     `json:"userId,omitempty"`
}
