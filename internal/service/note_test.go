package service

import (
	"testing"

	"github.com/jotter-dev/jotter/internal/domain"
	internal_errors "github.com/jotter-dev/jotter/internal/errors"
	"github.com/jotter-dev/jotter/internal/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockNoteStorage struct {
	SaveNoteFunc   func(data domain.NoteCreationData) (domain.Note, error)
	NoteFunc       func(id domain.NoteId) (domain.Note, error)
	UpdateNoteFunc func(id domain.NoteId, update domain.NoteUpdate) (domain.Note, error)
	DeleteNoteFunc func(id domain.NoteId) error
	NotesFunc      func(scope policy.ListScope, actorId domain.AccountId, skip, limit int) ([]domain.Note, error)
}

func (m *MockNoteStorage) SaveNote(data domain.NoteCreationData) (domain.Note, error) {
	if m.SaveNoteFunc != nil {
		return m.SaveNoteFunc(data)
	}
	return domain.Note{Id: 1, Title: data.Title, Content: data.Content, Visibility: data.Visibility, IsDraft: data.IsDraft, AuthorId: data.AuthorId}, nil
}

func (m *MockNoteStorage) Note(id domain.NoteId) (domain.Note, error) {
	if m.NoteFunc != nil {
		return m.NoteFunc(id)
	}
	return domain.Note{Id: id, AuthorId: 1, Visibility: domain.VisibilityPrivate}, nil
}

func (m *MockNoteStorage) UpdateNote(id domain.NoteId, update domain.NoteUpdate) (domain.Note, error) {
	if m.UpdateNoteFunc != nil {
		return m.UpdateNoteFunc(id, update)
	}
	return domain.Note{Id: id, Title: update.Title, Content: update.Content, Visibility: update.Visibility, IsDraft: update.IsDraft, AuthorId: 1}, nil
}

func (m *MockNoteStorage) DeleteNote(id domain.NoteId) error {
	if m.DeleteNoteFunc != nil {
		return m.DeleteNoteFunc(id)
	}
	return nil
}

func (m *MockNoteStorage) Notes(scope policy.ListScope, actorId domain.AccountId, skip, limit int) ([]domain.Note, error) {
	if m.NotesFunc != nil {
		return m.NotesFunc(scope, actorId, skip, limit)
	}
	return nil, nil
}

func testUser(id domain.AccountId) *domain.Account {
	return &domain.Account{Id: id, Role: domain.RoleUser, IsActive: true, IsVerified: true}
}

func testAdmin(id domain.AccountId) *domain.Account {
	return &domain.Account{Id: id, Role: domain.RoleAdmin, IsActive: true, IsVerified: true}
}

func TestNoteCreate(t *testing.T) {
	t.Run("defaults to private and stamps the author", func(t *testing.T) {
		storage := &MockNoteStorage{}
		service := NewNote(storage, testConfig())

		var saved domain.NoteCreationData
		storage.SaveNoteFunc = func(data domain.NoteCreationData) (domain.Note, error) {
			saved = data
			return domain.Note{Id: 1}, nil
		}

		_, err := service.Create(testUser(9), domain.NoteCreationData{Title: "t", Content: "c"})

		require.NoError(t, err)
		assert.Equal(t, domain.VisibilityPrivate, saved.Visibility)
		assert.Equal(t, domain.AccountId(9), saved.AuthorId)
	})

	t.Run("strips markup from title and content", func(t *testing.T) {
		storage := &MockNoteStorage{}
		service := NewNote(storage, testConfig())

		var saved domain.NoteCreationData
		storage.SaveNoteFunc = func(data domain.NoteCreationData) (domain.Note, error) {
			saved = data
			return domain.Note{Id: 1}, nil
		}

		_, err := service.Create(testUser(1), domain.NoteCreationData{
			Title:   "  <b>hello</b>  ",
			Content: "<script>alert(1)</script>body",
		})

		require.NoError(t, err)
		assert.Equal(t, "hello", saved.Title)
		assert.Equal(t, "body", saved.Content)
	})

	t.Run("invalid visibility", func(t *testing.T) {
		service := NewNote(&MockNoteStorage{}, testConfig())

		_, err := service.Create(testUser(1), domain.NoteCreationData{Visibility: "friends-only"})

		assert.True(t, internal_errors.IsKind(err, internal_errors.InvalidVisibility))
	})

	t.Run("anonymous actor", func(t *testing.T) {
		service := NewNote(&MockNoteStorage{}, testConfig())

		_, err := service.Create(nil, domain.NoteCreationData{Title: "t"})

		assert.True(t, internal_errors.IsKind(err, internal_errors.Forbidden))
	})
}

func TestNoteGet(t *testing.T) {
	stored := func(visibility domain.Visibility, draft bool) func(domain.NoteId) (domain.Note, error) {
		return func(id domain.NoteId) (domain.Note, error) {
			return domain.Note{Id: id, AuthorId: 1, Visibility: visibility, IsDraft: draft}, nil
		}
	}

	tests := []struct {
		name       string
		actor      *domain.Account
		visibility domain.Visibility
		draft      bool
		allowed    bool
	}{
		{"author reads own private", testUser(1), domain.VisibilityPrivate, false, true},
		{"stranger blocked from private", testUser(2), domain.VisibilityPrivate, false, false},
		{"anonymous reads public", nil, domain.VisibilityPublic, false, true},
		{"anonymous reads unlisted by id", nil, domain.VisibilityUnlisted, false, true},
		{"draft hidden even when public", testUser(2), domain.VisibilityPublic, true, false},
		{"author reads own draft", testUser(1), domain.VisibilityPublic, true, true},
		{"admin reads anything", testAdmin(3), domain.VisibilityPrivate, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			storage := &MockNoteStorage{NoteFunc: stored(tc.visibility, tc.draft)}
			service := NewNote(storage, testConfig())

			_, err := service.Get(tc.actor, 10)

			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, internal_errors.IsKind(err, internal_errors.Forbidden))
			}
		})
	}

	t.Run("missing note", func(t *testing.T) {
		storage := &MockNoteStorage{NoteFunc: func(id domain.NoteId) (domain.Note, error) {
			return domain.Note{}, internal_errors.NewNotFound("Note not found")
		}}
		service := NewNote(storage, testConfig())

		_, err := service.Get(testUser(1), 404)

		assert.True(t, internal_errors.IsNotFound(err))
	})
}

func TestNoteUpdate(t *testing.T) {
	t.Run("author updates and input is sanitized", func(t *testing.T) {
		storage := &MockNoteStorage{}
		service := NewNote(storage, testConfig())

		var applied domain.NoteUpdate
		storage.UpdateNoteFunc = func(id domain.NoteId, update domain.NoteUpdate) (domain.Note, error) {
			applied = update
			return domain.Note{Id: id}, nil
		}

		_, err := service.Update(testUser(1), 10, domain.NoteUpdate{
			Title: "<i>new</i>", Content: "body", Visibility: domain.VisibilityPublic,
		})

		require.NoError(t, err)
		assert.Equal(t, "new", applied.Title)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		service := NewNote(&MockNoteStorage{}, testConfig())

		_, err := service.Update(testUser(2), 10, domain.NoteUpdate{Visibility: domain.VisibilityPrivate})

		assert.True(t, internal_errors.IsKind(err, internal_errors.Forbidden))
	})

	t.Run("admin can update someone else's note", func(t *testing.T) {
		service := NewNote(&MockNoteStorage{}, testConfig())

		_, err := service.Update(testAdmin(2), 10, domain.NoteUpdate{Visibility: domain.VisibilityPrivate})

		assert.NoError(t, err)
	})
}

func TestNoteDelete(t *testing.T) {
	t.Run("author deletes", func(t *testing.T) {
		storage := &MockNoteStorage{}
		service := NewNote(storage, testConfig())

		deleted := false
		storage.DeleteNoteFunc = func(id domain.NoteId) error {
			deleted = true
			return nil
		}

		require.NoError(t, service.Delete(testUser(1), 10))
		assert.True(t, deleted)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		service := NewNote(&MockNoteStorage{}, testConfig())

		err := service.Delete(testUser(2), 10)

		assert.True(t, internal_errors.IsKind(err, internal_errors.Forbidden))
	})
}

func TestNoteList(t *testing.T) {
	capture := func(scope *policy.ListScope, actorId *domain.AccountId, skip, limit *int) *MockNoteStorage {
		return &MockNoteStorage{NotesFunc: func(s policy.ListScope, a domain.AccountId, sk, l int) ([]domain.Note, error) {
			*scope, *actorId, *skip, *limit = s, a, sk, l
			return nil, nil
		}}
	}

	t.Run("anonymous is forced to the public scope", func(t *testing.T) {
		var scope policy.ListScope
		var actorId domain.AccountId
		var skip, limit int
		service := NewNote(capture(&scope, &actorId, &skip, &limit), testConfig())

		_, err := service.List(nil, "all", 0, 10)

		require.NoError(t, err)
		assert.Equal(t, policy.ScopePublic, scope)
	})

	t.Run("user default scope is own plus public", func(t *testing.T) {
		var scope policy.ListScope
		var actorId domain.AccountId
		var skip, limit int
		service := NewNote(capture(&scope, &actorId, &skip, &limit), testConfig())

		_, err := service.List(testUser(4), "", 0, 10)

		require.NoError(t, err)
		assert.Equal(t, policy.ScopeDefault, scope)
		assert.Equal(t, domain.AccountId(4), actorId)
	})

	t.Run("limit is clamped and negative skip reset", func(t *testing.T) {
		var scope policy.ListScope
		var actorId domain.AccountId
		var skip, limit int
		cfg := testConfig()
		service := NewNote(capture(&scope, &actorId, &skip, &limit), cfg)

		_, err := service.List(testUser(4), "", -5, 100000)

		require.NoError(t, err)
		assert.Equal(t, 0, skip)
		assert.Equal(t, cfg.Public.ListPageSize, limit)
	})
}
