package domain

import (
	"net/http"
	"time"

	internal_errors "github.com/jotter-dev/jotter/internal/errors"
)

// Visibility is a closed set validated at every boundary.
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
)

func (v Visibility) Validate() error {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityUnlisted:
		return nil
	}
	return &internal_errors.ErrorWithStatusCode{
		Kind:       internal_errors.InvalidVisibility,
		Message:    "Unknown visibility: " + string(v),
		StatusCode: http.StatusBadRequest,
	}
}

type Note struct {
	Id         NoteId
	Title      NoteTitle
	Content    NoteBody
	Visibility Visibility
	IsDraft    bool
	AuthorId   AccountId
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NoteCreationData carries the author-supplied fields of a new note.
type NoteCreationData struct {
	Title      NoteTitle
	Content    NoteBody
	Visibility Visibility
	IsDraft    bool
	AuthorId   AccountId
}

// NoteUpdate carries the mutable fields of an existing note.
type NoteUpdate struct {
	Title      NoteTitle
	Content    NoteBody
	Visibility Visibility
	IsDraft    bool
}
