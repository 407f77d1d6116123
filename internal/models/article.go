package models

import "time"

type Article struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	SubmittedBy int       `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArticleWithUser is an Article joined with its submitter's email.
type ArticleWithUser struct {
	Article
	SubmitterEmail string `json:"submitter_email"`
}
