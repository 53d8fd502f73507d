// Package access decides how a user relates to a playlist.
package access

// Verdict is the relationship a requester has to a playlist.
type Verdict int

const (
	Denied Verdict = iota
	Owner
	Collaborator
)

func (v Verdict) String() string {
	switch v {
	case Owner:
		return "owner"
	case Collaborator:
		return "collaborator"
	default:
		return "denied"
	}
}

// Allowed reports whether v grants any access at all.
func (v Verdict) Allowed() bool {
	return v != Denied
}

// Decide grants Owner to the playlist owner and Collaborator to anyone the
// registry lists for the playlist. An empty requester is never the owner.
func Decide(ownerID, requesterID string, isCollaborator bool) Verdict {
	if requesterID != "" && requesterID == ownerID {
		return Owner
	}
	if isCollaborator {
		return Collaborator
	}
	return Denied
}

// DecideOwnerOnly is Decide without the collaborator tier.
func DecideOwnerOnly(ownerID, requesterID string) Verdict {
	return Decide(ownerID, requesterID, false)
}
