// AngelaMos | 2026
// gate.go

package access

import "context"

type Reason string

const (
	ReasonAllowed         Reason = "allowed"
	ReasonInactive        Reason = "inactive"
	ReasonPremiumRequired Reason = "premium_required"
)

// Viewer is the caller as the store sees them right now. A nil *Viewer is
// an anonymous visitor.
type Viewer struct {
	ID        int64
	Username  string
	IsPremium bool
	IsAdmin   bool
}

func (v *Viewer) Premium() bool {
	return v != nil && v.IsPremium
}

func (v *Viewer) Admin() bool {
	return v != nil && v.IsAdmin
}

func (v *Viewer) Tier() string {
	if v.Premium() {
		return "premium"
	}
	return "free"
}

type Target struct {
	Active  bool
	Premium bool
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

// Decide is the whole gate. Inactive tools are never offered; premium tools
// need a premium viewer; everything else is open to anyone.
func Decide(viewer *Viewer, tool Target) Decision {
	if !tool.Active {
		return Decision{Allowed: false, Reason: ReasonInactive}
	}
	if tool.Premium && !viewer.Premium() {
		return Decision{Allowed: false, Reason: ReasonPremiumRequired}
	}
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

type ViewerSource interface {
	ResolveViewer(ctx context.Context, userID int64) (*Viewer, error)
}
