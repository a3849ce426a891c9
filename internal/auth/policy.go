package auth

import "github.com/google/uuid"

// Access policy: pure decision functions with no side effects. Callers map
// false to a forbidden outcome at the HTTP boundary.

// CanReadAll reports whether the user may list resources owned by others.
func CanReadAll(u *User) bool {
	return u != nil && u.IsSuperuser
}

// CanMutate reports whether the user may read or modify a resource owned
// by ownerID.
func CanMutate(u *User, ownerID uuid.UUID) bool {
	if u == nil {
		return false
	}
	return u.IsSuperuser || u.ID == ownerID
}

// CanSelfDelete reports whether the user may delete their own account.
// Superusers are categorically barred: the rule guards against losing the
// last administrative account.
func CanSelfDelete(u *User) bool {
	return u != nil && !u.IsSuperuser
}

// CanDeleteUser reports whether the user may delete the account targetID
// through the administrative path. Superusers deleting themselves are
// denied under the same rule as CanSelfDelete.
func CanDeleteUser(u *User, targetID uuid.UUID) bool {
	if u == nil || !u.IsSuperuser {
		return false
	}
	return u.ID != targetID
}
