package model

// Identity is the verified caller identity extracted from a bearer token.
// The service layer trusts it as ground truth; it never inspects tokens
// itself. A nil *Identity means the call is anonymous.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// CanActFor returns true if the identity is the given user or an admin.
func (i *Identity) CanActFor(userID string) bool {
	if i == nil {
		return false
	}
	return i.IsAdmin || i.UserID == userID
}
