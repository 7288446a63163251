package access

import (
	"media-access/internal/domain/content"
	"media-access/internal/domain/users"
)

// PrincipalFor builds the request principal for a stored user.
func PrincipalFor(u users.User) Principal {
	return Principal{
		ID:           u.ID,
		Role:         u.Role,
		Capabilities: CapabilitiesFor(u.Role),
	}
}

// ResourceFor exposes the author and type of a stored post to the policy.
func ResourceFor(p content.Post) *Resource {
	return &Resource{
		ID:       p.ID,
		AuthorID: p.AuthorID,
		Type:     p.Type,
	}
}
