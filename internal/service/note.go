package service

import (
	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/errors"
	"github.com/jotter-dev/jotter/internal/policy"
	"github.com/jotter-dev/jotter/internal/sanitize"
)

type NoteService interface {
	Create(actor *domain.Account, data domain.NoteCreationData) (domain.Note, error)
	Get(actor *domain.Account, id domain.NoteId) (domain.Note, error)
	Update(actor *domain.Account, id domain.NoteId, update domain.NoteUpdate) (domain.Note, error)
	Delete(actor *domain.Account, id domain.NoteId) error
	List(actor *domain.Account, visibility string, skip, limit int) ([]domain.Note, error)
}

type NoteStorage interface {
	SaveNote(data domain.NoteCreationData) (domain.Note, error)
	Note(id domain.NoteId) (domain.Note, error)
	UpdateNote(id domain.NoteId, update domain.NoteUpdate) (domain.Note, error)
	DeleteNote(id domain.NoteId) error
	Notes(scope policy.ListScope, actorId domain.AccountId, skip, limit int) ([]domain.Note, error)
}

type Note struct {
	storage NoteStorage
	cfg     *config.Config
}

func NewNote(storage NoteStorage, cfg *config.Config) *Note {
	return &Note{storage: storage, cfg: cfg}
}

func (n *Note) Create(actor *domain.Account, data domain.NoteCreationData) (domain.Note, error) {
	if actor == nil {
		return domain.Note{}, errors.NewForbidden("Sign in to create notes")
	}
	if data.Visibility == "" {
		data.Visibility = domain.VisibilityPrivate
	}
	if err := data.Visibility.Validate(); err != nil {
		return domain.Note{}, err
	}

	data.Title = sanitize.Text(data.Title)
	data.Content = sanitize.Text(data.Content)
	data.AuthorId = actor.Id

	return n.storage.SaveNote(data)
}

func (n *Note) Get(actor *domain.Account, id domain.NoteId) (domain.Note, error) {
	note, err := n.storage.Note(id)
	if err != nil {
		return domain.Note{}, err
	}
	if !policy.CanReadNote(actor, note) {
		return domain.Note{}, errors.NewForbidden("Not allowed to view this note")
	}
	return note, nil
}

func (n *Note) Update(actor *domain.Account, id domain.NoteId, update domain.NoteUpdate) (domain.Note, error) {
	if err := update.Visibility.Validate(); err != nil {
		return domain.Note{}, err
	}

	note, err := n.storage.Note(id)
	if err != nil {
		return domain.Note{}, err
	}
	if !policy.CanMutateNote(actor, note) {
		return domain.Note{}, errors.NewForbidden("Not allowed to modify this note")
	}

	update.Title = sanitize.Text(update.Title)
	update.Content = sanitize.Text(update.Content)

	return n.storage.UpdateNote(id, update)
}

func (n *Note) Delete(actor *domain.Account, id domain.NoteId) error {
	note, err := n.storage.Note(id)
	if err != nil {
		return err
	}
	if !policy.CanMutateNote(actor, note) {
		return errors.NewForbidden("Not allowed to delete this note")
	}
	return n.storage.DeleteNote(id)
}

// List applies the visibility filter as a query predicate rather than a
// per-row check. Anonymous actors only ever see the public scope.
func (n *Note) List(actor *domain.Account, visibility string, skip, limit int) ([]domain.Note, error) {
	if limit <= 0 || limit > n.cfg.Public.ListPageSize {
		limit = n.cfg.Public.ListPageSize
	}
	if skip < 0 {
		skip = 0
	}

	scope := policy.ListScopeFor(actor, visibility)
	var actorId domain.AccountId
	if actor != nil {
		actorId = actor.Id
	}
	return n.storage.Notes(scope, actorId, skip, limit)
}
