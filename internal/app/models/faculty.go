package models

import "time"

// Faculty groups departments; names and uppercase codes are unique.
type Faculty struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}
