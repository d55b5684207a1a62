package common

import "time"

// ListResponse wraps a collection together with its size
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// TimestampResponse represents common timestamp fields
type TimestampResponse struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
