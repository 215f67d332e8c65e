package models

import (
	"time"
)

// Article represents one addressable unit of a regulatory text.
// The (law_id, article_number) pair is the identity key: re-ingesting the
// same law overwrites existing rows instead of appending new ones.
type Article struct {
	LawID     string    `json:"law_id"`
	Number    string    `json:"number"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}
