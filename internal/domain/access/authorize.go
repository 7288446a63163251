package access

// MetaCapabilities maps an action on a resource to the primitive capabilities
// the host requires by default.
func MetaCapabilities(actor Principal, action Action, r *Resource) []Capability {
	own := r != nil && r.AuthorID == actor.ID
	switch action {
	case ActionEdit:
		if own {
			return []Capability{CapEditPosts}
		}
		return []Capability{CapEditOthersPosts}
	case ActionDelete:
		if own {
			return []Capability{CapDeletePosts}
		}
		return []Capability{CapDeleteOthersPosts}
	case ActionEditOthers:
		return []Capability{CapEditOthersPosts}
	default:
		// unknown meta capabilities are checked as-is
		return []Capability{Capability(action)}
	}
}

// Authorizer is the host's capability check with a Policy hooked in.
type Authorizer struct {
	Policy Policy
}

func NewAuthorizer(p Policy) Authorizer {
	if p == nil {
		p = MediaPolicy{}
	}
	return Authorizer{Policy: p}
}

// Authorize resolves req. The returned Decision is the policy's opinion; the
// bool is the final verdict after the host's own rule has been applied.
func (a Authorizer) Authorize(req ActionRequest) (Decision, bool) {
	required := MetaCapabilities(req.Actor, req.Action, req.Resource)

	d := a.Policy.MapCapability(req)
	switch d.Kind {
	case DecisionDeny:
		return d, false
	case DecisionAllow:
		required = d.Capabilities
	}

	return d, req.Actor.Capabilities.HasAll(required)
}

// Can is Authorize without the policy decision.
func (a Authorizer) Can(actor Principal, action Action, r *Resource) bool {
	_, ok := a.Authorize(ActionRequest{Actor: actor, Action: action, Resource: r})
	return ok
}
