package content

import (
	"strings"
	"time"
)

const (
	TypeAttachment = "attachment"
	TypePost       = "post"
	TypePage       = "page"
)

// Post is any stored content record. Uploaded media are posts of type attachment.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index:idx_posts_author_type,priority:1" json:"author_id"`
	Type     string `gorm:"type:varchar(20);not null;index:idx_posts_author_type,priority:2" json:"type"`
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	MimeType string `gorm:"type:varchar(100)" json:"mime_type,omitempty"`
	Path     string `json:"path,omitempty"`

	// ParentID is the post an attachment was uploaded to, if any.
	ParentID *uint `json:"parent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Post) IsAttachment() bool {
	return p.Type == TypeAttachment
}

// MimeGroup returns the top-level mime type, e.g. "image" for "image/webp".
func (p Post) MimeGroup() string {
	group, _, _ := strings.Cut(p.MimeType, "/")
	return group
}
