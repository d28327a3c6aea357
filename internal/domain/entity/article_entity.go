package entity

import (
	"encoding/json"
	"time"
	"unicode/utf8"
)

const (
	CategoryCinema   = "Cinéma & Séries"
	CategoryMusic    = "Musique"
	CategoryComics   = "Comics, Manga"
	CategoryInternet = "Internet"
)

// Categories lists every accepted article category.
var Categories = []string{CategoryCinema, CategoryMusic, CategoryComics, CategoryInternet}

const summaryLength = 100

type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"authorId"`
	Author         *Author   `json:"author,omitempty"`
	Category       string    `json:"category"`
	Published      bool      `json:"published"`
	Views          int64     `json:"views"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	ImageObject    string    `json:"-"`
	ImageName      string    `json:"imageName,omitempty"`
	ImageExtension string    `json:"imageExtension,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Summary is the first 100 characters of the content followed by "...".
// Shorter content is returned unchanged.
func (a *Article) Summary() string {
	if utf8.RuneCountInString(a.Content) <= summaryLength {
		return a.Content
	}
	runes := []rune(a.Content)
	return string(runes[:summaryLength]) + "..."
}

func (a *Article) IsOwnedBy(userID string) bool {
	return userID != "" && a.AuthorID == userID
}

// VisibleTo reports whether userID may read the article body.
func (a *Article) VisibleTo(userID string) bool {
	return a.Published || a.IsOwnedBy(userID)
}

func (a Article) MarshalJSON() ([]byte, error) {
	type plain Article
	return json.Marshal(struct {
		plain
		Summary string `json:"summary"`
	}{plain(a), a.Summary()})
}
