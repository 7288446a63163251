package access

// Capability is a primitive permission held by a principal.
type Capability string

const (
	CapUploadFiles        Capability = "upload_files"
	CapEditPosts          Capability = "edit_posts"
	CapEditOthersPosts    Capability = "edit_others_posts"
	CapDeletePosts        Capability = "delete_posts"
	CapDeleteOthersPosts  Capability = "delete_others_posts"
	CapDeleteUsers        Capability = "delete_users"
	CapManageOptions      Capability = "manage_options"
	CapPublishPosts       Capability = "publish_posts"
	CapEditPublishedPosts Capability = "edit_published_posts"
)

// Action is a meta capability checked against a single resource.
type Action string

const (
	ActionEdit       Action = "edit_post"
	ActionDelete     Action = "delete_post"
	ActionEditOthers Action = "edit_others_posts"
)

// ViewContext identifies the listing a caller is rendering.
type ViewContext string

const (
	ViewMediaLibrary ViewContext = "media-library"
)

// PostTypeAttachment is the resource type of uploaded media.
const PostTypeAttachment = "attachment"

// Principal is the authenticated actor of a request.
type Principal struct {
	ID           uint
	Role         string
	Capabilities CapabilitySet
}

// Has reports whether the principal holds c.
func (p Principal) Has(c Capability) bool {
	return p.Capabilities.Has(c)
}

// CanManageAllMedia is the administrative tier, backed by delete_users.
func (p Principal) CanManageAllMedia() bool {
	return p.Has(CapDeleteUsers)
}

// Resource is the part of a stored post the policy needs.
type Resource struct {
	ID       uint
	AuthorID uint
	Type     string
}

func (r *Resource) IsMedia() bool {
	return r != nil && r.Type == PostTypeAttachment
}

// ListingFilter restricts a listing to a set of authors. Empty means no restriction.
type ListingFilter struct {
	AuthorIDs []uint
}

func (f ListingFilter) Restricted() bool {
	return len(f.AuthorIDs) > 0
}

// QueryArgs is the key/value attachment query sent by the upload modal.
type QueryArgs map[string]any

const QueryKeyAuthorIn = "author__in"

type ActionRequest struct {
	Actor    Principal
	Action   Action
	Resource *Resource
}

type DecisionKind string

const (
	DecisionDefer DecisionKind = "defer"
	DecisionAllow DecisionKind = "allow"
	DecisionDeny  DecisionKind = "deny"
)

// Decision is the policy's answer for one ActionRequest. On Allow,
// Capabilities replaces the capabilities the host would otherwise require.
type Decision struct {
	Kind         DecisionKind
	Capabilities []Capability
}

func Defer() Decision {
	return Decision{Kind: DecisionDefer}
}

func Allow(caps ...Capability) Decision {
	return Decision{Kind: DecisionAllow, Capabilities: caps}
}

func Deny() Decision {
	return Decision{Kind: DecisionDeny}
}
