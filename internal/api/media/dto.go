package media

import (
	"time"

	"media-access/internal/domain/content"
)

type MediaDTO struct {
	ID        uint      `json:"id"`
	AuthorID  uint      `json:"author_id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	MimeType  string    `json:"mime_type"`
	MimeGroup string    `json:"mime_group"`
	Path      string    `json:"path"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResponse struct {
	Items      []MediaDTO `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	View       string     `json:"view"`
	Restricted bool       `json:"restricted"`
}

type CreateMediaInput struct {
	Title    string `json:"title"`
	Caption  string `json:"caption"`
	MimeType string `json:"mime_type" binding:"required"`
	Path     string `json:"path" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

type UpdatePostInput struct {
	Title   *string `json:"title"`
	Caption *string `json:"caption"`
}

func toMediaDTO(p content.Post) MediaDTO {
	return MediaDTO{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Caption:   p.Caption,
		MimeType:  p.MimeType,
		MimeGroup: p.MimeGroup(),
		Path:      p.Path,
		ParentID:  p.ParentID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toMediaDTOs(posts []content.Post) []MediaDTO {
	out := make([]MediaDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toMediaDTO(p))
	}
	return out
}
