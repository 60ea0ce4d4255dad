package model

import "time"

// GenerationRecord is the stored metadata of one generation. The password
// itself is never persisted.
type GenerationRecord struct {
	ID        int64     `json:"id"`
	Length    int       `json:"length"`
	Uppercase bool      `json:"uppercase"`
	Lowercase bool      `json:"lowercase"`
	Numbers   bool      `json:"numbers"`
	Symbols   bool      `json:"symbols"`
	Strength  string    `json:"strength"`
	Entropy   string    `json:"entropy"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists recent generations, newest first.
type HistoryResponse struct {
	Records []GenerationRecord `json:"records"`
}
