package entity

import "time"

// Comment belongs to one article. ParentID references another comment of the
// same article and is serialized as "comment"; nil marks a root comment.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	ArticleID string    `json:"article"`
	ParentID  *string   `json:"comment"`
	Reported  bool      `json:"reported"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) IsOwnedBy(userID string) bool {
	return userID != "" && c.AuthorID == userID
}

// Parent returns the parent id or "" for a root comment.
func (c *Comment) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}
