package access

import "sort"

// CapabilitySet is an unordered set of capabilities.
type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func (s CapabilitySet) HasAll(caps []Capability) bool {
	for _, c := range caps {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Strings returns the capabilities sorted, for responses.
func (s CapabilitySet) Strings() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

const (
	RoleAdministrator = "administrator"
	RoleEditor        = "editor"
	RoleAuthor        = "author"
	RoleCurator       = "curator"
)

// CapabilitiesFor returns the capabilities granted to a role.
func CapabilitiesFor(role string) CapabilitySet {
	switch role {
	case RoleAdministrator:
		return NewCapabilitySet(
			CapUploadFiles,
			CapEditPosts, CapEditOthersPosts, CapEditPublishedPosts, CapPublishPosts,
			CapDeletePosts, CapDeleteOthersPosts,
			CapDeleteUsers, CapManageOptions,
		)
	case RoleEditor:
		return NewCapabilitySet(
			CapUploadFiles,
			CapEditPosts, CapEditOthersPosts, CapEditPublishedPosts, CapPublishPosts,
			CapDeletePosts, CapDeleteOthersPosts,
		)
	case RoleAuthor:
		return NewCapabilitySet(
			CapUploadFiles,
			CapEditPosts, CapEditPublishedPosts, CapPublishPosts,
			CapDeletePosts,
		)
	case RoleCurator:
		// curators only upload; editing their own media relies on MediaPolicy
		return NewCapabilitySet(CapUploadFiles)
	default:
		return NewCapabilitySet()
	}
}
