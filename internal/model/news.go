package model

import "time"

// NewsArticle is one result from the news collaborator.
type NewsArticle struct {
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Snippet string    `json:"snippet"`
	Source  string    `json:"source"`
	Image   string    `json:"image,omitempty"`
	Date    time.Time `json:"date"`
}
