package models

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserID    uint     `json:"user_id"`
	ProfileID uint     `json:"profile_id"`
	Role      UserRole `json:"role"`
}

func (a Actor) Authenticated() bool {
	return a.ProfileID != 0
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanModify reports whether the actor may change content owned by profileID.
func (a Actor) CanModify(profileID uint) bool {
	return a.IsAdmin() || (a.Authenticated() && a.ProfileID == profileID)
}
