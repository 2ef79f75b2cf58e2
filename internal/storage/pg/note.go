package pg

import (
	"fmt"
	"time"

	"github.com/jotter-dev/jotter/internal/domain"
	internal_errors "github.com/jotter-dev/jotter/internal/errors"
	"github.com/jotter-dev/jotter/internal/policy"
)

const noteColumns = "id, title, content, visibility, is_draft, author_id, created_at, updated_at"

// =========================================================================
// Public Methods (satisfy the service.NoteStorage interface)
// =========================================================================

// SaveNote inserts a new note and returns it with generated fields.
func (s *Storage) SaveNote(data domain.NoteCreationData) (domain.Note, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
        INSERT INTO notes(title, content, visibility, is_draft, author_id)
        VALUES($1, $2, $3, $4, $5)
        RETURNING %s`, noteColumns),
		data.Title, data.Content, string(data.Visibility), data.IsDraft, data.AuthorId)
	note, err := scanNote(row)
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	return note, nil
}

// Note fetches a note by id.
func (s *Storage) Note(id domain.NoteId) (domain.Note, error) {
	row := s.db.QueryRow(fmt.Sprintf("SELECT %s FROM notes WHERE id = $1", noteColumns), id)
	note, err := scanNote(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Note{}, internal_errors.NewNotFound("Note not found")
		}
		return domain.Note{}, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

// UpdateNote overwrites the mutable fields and bumps updated_at.
func (s *Storage) UpdateNote(id domain.NoteId, update domain.NoteUpdate) (domain.Note, error) {
	row := s.db.QueryRow(fmt.Sprintf(`
        UPDATE notes
        SET title = $1, content = $2, visibility = $3, is_draft = $4, updated_at = $5
        WHERE id = $6
        RETURNING %s`, noteColumns),
		update.Title, update.Content, string(update.Visibility), update.IsDraft, time.Now().UTC(), id)
	note, err := scanNote(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Note{}, internal_errors.NewNotFound("Note not found")
		}
		return domain.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note.
func (s *Storage) DeleteNote(id domain.NoteId) error {
	result, err := s.db.Exec("DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireAffected(result, "Note not found")
}

// Notes lists notes newest-first under the given scope. actorId is only
// consulted for the scopes that reference the actor's own notes.
func (s *Storage) Notes(scope policy.ListScope, actorId domain.AccountId, skip, limit int) ([]domain.Note, error) {
	where, args := scopePredicate(scope, actorId)
	args = append(args, skip, limit)

	query := fmt.Sprintf(`
        SELECT %s FROM notes
        %s
        ORDER BY created_at DESC, id DESC
        OFFSET $%d LIMIT $%d`, noteColumns, where, len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// =========================================================================
// Internal helpers
// =========================================================================

// scopePredicate translates a listing scope into a WHERE clause. The
// public scope deliberately excludes unlisted notes: they are reachable
// by id but never listed.
func scopePredicate(scope policy.ListScope, actorId domain.AccountId) (string, []interface{}) {
	switch scope {
	case policy.ScopeMine:
		return "WHERE author_id = $1", []interface{}{actorId}
	case policy.ScopePublic:
		return "WHERE visibility = 'public' AND NOT is_draft", nil
	case policy.ScopeAll:
		return "", nil
	default:
		return "WHERE (author_id = $1 OR (visibility = 'public' AND NOT is_draft))", []interface{}{actorId}
	}
}

func scanNote(row rowScanner) (domain.Note, error) {
	var note domain.Note
	var visibility string
	err := row.Scan(&note.Id, &note.Title, &note.Content, &visibility,
		&note.IsDraft, &note.AuthorId, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return domain.Note{}, err
	}
	note.Visibility = domain.Visibility(visibility)
	return note, nil
}
