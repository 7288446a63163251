package access

// Policy is consulted by the host at each decision point. Implementations
// must be pure: the same inputs always yield the same outputs.
type Policy interface {
	FilterListing(p Principal, view ViewContext) ListingFilter
	FilterAjaxAttachmentQuery(p Principal, args QueryArgs) QueryArgs
	MapCapability(req ActionRequest) Decision
}

// MediaPolicy limits non-administrators to media they authored.
type MediaPolicy struct{}

var _ Policy = MediaPolicy{}

// FilterListing restricts the media library listing to the principal's own
// uploads. Other views are left alone.
func (MediaPolicy) FilterListing(p Principal, view ViewContext) ListingFilter {
	if view != ViewMediaLibrary {
		return ListingFilter{}
	}
	if p.CanManageAllMedia() {
		return ListingFilter{}
	}
	return ListingFilter{AuthorIDs: []uint{p.ID}}
}

// FilterAjaxAttachmentQuery pins author__in to the principal. A value supplied
// by the caller is overwritten so a crafted query cannot widen the result.
func (MediaPolicy) FilterAjaxAttachmentQuery(p Principal, args QueryArgs) QueryArgs {
	if p.CanManageAllMedia() {
		return args
	}
	out := make(QueryArgs, len(args)+1)
	for k, v := range args {
		out[k] = v
	}
	out[QueryKeyAuthorIn] = []uint{p.ID}
	return out
}

// MapCapability lets owners act on their own media with upload_files in place
// of the requested capability. Anything else defers to the host.
func (MediaPolicy) MapCapability(req ActionRequest) Decision {
	switch req.Action {
	case ActionEdit, ActionDelete, ActionEditOthers:
		if ownsMedia(req.Actor, req.Resource) {
			return Allow(CapUploadFiles)
		}
	}
	return Defer()
}

func ownsMedia(p Principal, r *Resource) bool {
	return r.IsMedia() && r.AuthorID == p.ID
}
