package service

import (
	"strings"

	"epicode/internal/api/apperrors"
)

// Actor is the authenticated caller resolved from a bearer token.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// Identity scopes one reaction/upvote per caller: either a registered user id
// or an opaque anonymous id, exactly one of the two. The zero value is
// invalid, which keeps the either-or invariant structural rather than
// convention-based.
type Identity struct {
	userID string
	anonID string
}

func UserIdentity(userID string) Identity {
	return Identity{userID: userID}
}

func AnonIdentity(anonID string) Identity {
	return Identity{anonID: strings.TrimSpace(anonID)}
}

func (i Identity) UserID() (string, bool) {
	return i.userID, i.userID != ""
}

func (i Identity) AnonID() (string, bool) {
	return i.anonID, i.anonID != ""
}

func (i Identity) validate() error {
	if i.userID == "" && i.anonID == "" {
		return apperrors.Validationf("a user or anonymous id is required")
	}
	return nil
}

// ResolveIdentity picks the caller's identity: an authenticated actor wins,
// otherwise the supplied anonymous id is used.
func ResolveIdentity(actor *Actor, anonID string) Identity {
	if actor != nil && actor.ID != "" {
		return UserIdentity(actor.ID)
	}
	return AnonIdentity(anonID)
}

// Authorship is a comment's provenance: a registered user or an anonymous
// name/email pair, never both, never neither.
type Authorship struct {
	userID string
	name   string
	email  string
}

func AuthoredBy(userID string) Authorship {
	return Authorship{userID: userID}
}

func AnonymousAuthor(name, email string) Authorship {
	return Authorship{name: strings.TrimSpace(name), email: strings.TrimSpace(email)}
}

func (a Authorship) validate() error {
	if a.userID != "" {
		return nil
	}
	if a.name == "" || a.email == "" {
		return apperrors.Validationf("name and email are required for anonymous comments")
	}
	return nil
}
