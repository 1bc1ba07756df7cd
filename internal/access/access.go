// Package access makes the per-request authorization decision for note
// operations.
package access

import "github.com/Xek-YP/ya-note/internal/models"

// Operation is a note route being attempted.
type Operation int

const (
	OpList Operation = iota
	OpAdd
	OpDetail
	OpEdit
	OpDelete
	OpSuccess
)

// Decision is the authorization outcome. DenyNotFound is deliberately
// indistinguishable from "no such note": ownership violations never surface
// as Forbidden, so the existence of other users' notes does not leak.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	DenyNotFound
)

// Authorize decides whether requester may perform op on target. A nil
// requester is anonymous; target is nil for operations without one (List,
// Add, Success) and for lookups that found nothing.
func Authorize(requester *models.User, op Operation, target *models.Note) Decision {
	if requester == nil {
		return RedirectLogin
	}
	switch op {
	case OpList, OpAdd, OpSuccess:
		return Allow
	case OpDetail, OpEdit, OpDelete:
		if target == nil {
			return DenyNotFound
		}
		if target.AuthorID == requester.ID {
			return Allow
		}
		return DenyNotFound
	}
	return DenyNotFound
}
