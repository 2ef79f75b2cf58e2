// Package policy holds the pure authorization decisions: given an actor
// and a resource, may the action proceed. It has no storage or transport
// dependencies so every rule is testable in isolation.
package policy

import (
	"github.com/jotter-dev/jotter/internal/domain"
)

// ListScope selects the filter a note listing query runs under.
type ListScope string

const (
	ScopeMine    ListScope = "mine"    // author_id = actor
	ScopePublic  ListScope = "public"  // public AND NOT draft
	ScopeDefault ListScope = "default" // union of mine + public
	ScopeAll     ListScope = "all"     // unfiltered, admin only
)

// CanReadNote reports whether actor may read note. actor is nil for
// anonymous requests.
//
// A public, non-draft note is readable by anyone. An unlisted, non-draft
// note is readable by anyone who knows its id; it just never shows up in
// listings. Everything else requires authorship or the admin role.
func CanReadNote(actor *domain.Account, note domain.Note) bool {
	if !note.IsDraft {
		switch note.Visibility {
		case domain.VisibilityPublic, domain.VisibilityUnlisted:
			return true
		}
	}
	if actor == nil {
		return false
	}
	return actor.Id == note.AuthorId || actor.IsAdmin()
}

// CanMutateNote reports whether actor may update or delete note.
func CanMutateNote(actor *domain.Account, note domain.Note) bool {
	if actor == nil {
		return false
	}
	return actor.Id == note.AuthorId || actor.IsAdmin()
}

// ListScopeFor resolves the requested visibility filter against the
// actor. Admins with no explicit filter see everything; anonymous actors
// are always narrowed to the public scope.
func ListScopeFor(actor *domain.Account, requested string) ListScope {
	if actor == nil {
		return ScopePublic
	}
	switch requested {
	case "mine":
		return ScopeMine
	case "public":
		return ScopePublic
	case "all":
		if actor.IsAdmin() {
			return ScopeAll
		}
		return ScopeDefault
	default:
		if actor.IsAdmin() {
			return ScopeAll
		}
		return ScopeDefault
	}
}

// CanManageAccount reports whether actor may change target's role or
// status, or delete target. Admin only, and never against the actor's
// own account: self-demotion, self-deactivation and self-deletion are
// all refused through the admin path.
func CanManageAccount(actor *domain.Account, target domain.Account) bool {
	if actor == nil || !actor.IsAdmin() {
		return false
	}
	return actor.Id != target.Id
}
