package services

import (
	"fmt"

	"journal-editorial-api/models"
)

// Actor is the trusted identity extracted from the session by the auth
// middleware. It is passed explicitly into every action so authorization is
// testable without a real session layer.
type Actor struct {
	ID   string
	Role string
}

// IsEditorial reports whether the actor holds an editorial role.
func (a Actor) IsEditorial() bool {
	return a.Role == models.RoleEditor || a.Role == models.RoleAdmin
}

// Authorize is the single authorization check every action runs first. The
// actor passes when its role is in roles, or when owns is non-nil and
// reports true. It fails with ErrUnauthorized, never with a not-found, so a
// rejected caller learns nothing about the record it was denied.
func Authorize(actor Actor, roles []string, owns func() bool) error {
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	if owns != nil && owns() {
		return nil
	}
	return fmt.Errorf("%w: role %s may not perform this action", ErrUnauthorized, actor.Role)
}

// RequireEditorial gates an action to editors and admins before any data
// access happens.
func RequireEditorial(actor Actor) error {
	return Authorize(actor, []string{models.RoleEditor, models.RoleAdmin}, nil)
}

// RequireOwner gates an action to the record's owner. Editorial roles do not
// bypass this: revision upload, for example, is the author's act alone.
func RequireOwner(actor Actor, ownerID string) error {
	return Authorize(actor, nil, func() bool { return actor.ID == ownerID })
}
