package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/domain"
)

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		AccessTokenTTL:  900,
		RefreshTokenTTL: 604800,
		ListPageSize:    100,
	}}
}

// --- Service mocks ---

type MockAuthService struct {
	MockRegister             func(creds domain.Credentials) (domain.AccountId, error)
	MockVerifyEmail          func(token string) (domain.AccountId, error)
	MockLogin                func(creds domain.Credentials) (domain.Account, domain.TokenPair, error)
	MockRefresh              func(accountId domain.AccountId, presented string) (domain.TokenPair, error)
	MockLogout               func(accountId domain.AccountId) error
	MockRequestPasswordReset func(email domain.Email) error
	MockConfirmPasswordReset func(token string, newPassword domain.Password) (domain.AccountId, error)
}

func (m *MockAuthService) Register(creds domain.Credentials) (domain.AccountId, error) {
	if m.MockRegister != nil {
		return m.MockRegister(creds)
	}
	return 1, nil
}

func (m *MockAuthService) VerifyEmail(token string) (domain.AccountId, error) {
	if m.MockVerifyEmail != nil {
		return m.MockVerifyEmail(token)
	}
	return 1, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (domain.Account, domain.TokenPair, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return domain.Account{Id: 1}, domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockAuthService) Refresh(accountId domain.AccountId, presented string) (domain.TokenPair, error) {
	if m.MockRefresh != nil {
		return m.MockRefresh(accountId, presented)
	}
	return domain.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (m *MockAuthService) Logout(accountId domain.AccountId) error {
	if m.MockLogout != nil {
		return m.MockLogout(accountId)
	}
	return nil
}

func (m *MockAuthService) RequestPasswordReset(email domain.Email) error {
	if m.MockRequestPasswordReset != nil {
		return m.MockRequestPasswordReset(email)
	}
	return nil
}

func (m *MockAuthService) ConfirmPasswordReset(token string, newPassword domain.Password) (domain.AccountId, error) {
	if m.MockConfirmPasswordReset != nil {
		return m.MockConfirmPasswordReset(token, newPassword)
	}
	return 1, nil
}

type MockNoteService struct {
	MockCreate func(actor *domain.Account, data domain.NoteCreationData) (domain.Note, error)
	MockGet    func(actor *domain.Account, id domain.NoteId) (domain.Note, error)
	MockUpdate func(actor *domain.Account, id domain.NoteId, update domain.NoteUpdate) (domain.Note, error)
	MockDelete func(actor *domain.Account, id domain.NoteId) error
	MockList   func(actor *domain.Account, visibility string, skip, limit int) ([]domain.Note, error)
}

func (m *MockNoteService) Create(actor *domain.Account, data domain.NoteCreationData) (domain.Note, error) {
	if m.MockCreate != nil {
		return m.MockCreate(actor, data)
	}
	return domain.Note{Id: 1}, nil
}

func (m *MockNoteService) Get(actor *domain.Account, id domain.NoteId) (domain.Note, error) {
	if m.MockGet != nil {
		return m.MockGet(actor, id)
	}
	return domain.Note{Id: id}, nil
}

func (m *MockNoteService) Update(actor *domain.Account, id domain.NoteId, update domain.NoteUpdate) (domain.Note, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(actor, id, update)
	}
	return domain.Note{Id: id}, nil
}

func (m *MockNoteService) Delete(actor *domain.Account, id domain.NoteId) error {
	if m.MockDelete != nil {
		return m.MockDelete(actor, id)
	}
	return nil
}

func (m *MockNoteService) List(actor *domain.Account, visibility string, skip, limit int) ([]domain.Note, error) {
	if m.MockList != nil {
		return m.MockList(actor, visibility, skip, limit)
	}
	return nil, nil
}

type MockAdminService struct {
	MockAccounts      func(actor *domain.Account, skip, limit int) ([]domain.Account, error)
	MockAccount       func(actor *domain.Account, id domain.AccountId) (domain.Account, error)
	MockChangeRole    func(actor *domain.Account, id domain.AccountId, role domain.Role) (domain.Account, domain.Role, error)
	MockChangeStatus  func(actor *domain.Account, id domain.AccountId, active bool) (domain.Account, bool, error)
	MockDeleteAccount func(actor *domain.Account, id domain.AccountId) error
}

func (m *MockAdminService) Accounts(actor *domain.Account, skip, limit int) ([]domain.Account, error) {
	if m.MockAccounts != nil {
		return m.MockAccounts(actor, skip, limit)
	}
	return nil, nil
}

func (m *MockAdminService) Account(actor *domain.Account, id domain.AccountId) (domain.Account, error) {
	if m.MockAccount != nil {
		return m.MockAccount(actor, id)
	}
	return domain.Account{Id: id}, nil
}

func (m *MockAdminService) ChangeRole(actor *domain.Account, id domain.AccountId, role domain.Role) (domain.Account, domain.Role, error) {
	if m.MockChangeRole != nil {
		return m.MockChangeRole(actor, id, role)
	}
	return domain.Account{Id: id, Role: role}, domain.RoleUser, nil
}

func (m *MockAdminService) ChangeStatus(actor *domain.Account, id domain.AccountId, active bool) (domain.Account, bool, error) {
	if m.MockChangeStatus != nil {
		return m.MockChangeStatus(actor, id, active)
	}
	return domain.Account{Id: id, IsActive: active}, !active, nil
}

func (m *MockAdminService) DeleteAccount(actor *domain.Account, id domain.AccountId) error {
	if m.MockDeleteAccount != nil {
		return m.MockDeleteAccount(actor, id)
	}
	return nil
}

// MockAuditService records entries in memory for assertions.
type MockAuditService struct {
	mu       sync.Mutex
	Recorded []domain.AuditEntry

	MockEntries func(skip, limit int) ([]domain.AuditEntry, error)
	MockCount   func() (int64, error)
}

func (m *MockAuditService) Record(entry domain.AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Recorded = append(m.Recorded, entry)
}

func (m *MockAuditService) Entries(skip, limit int) ([]domain.AuditEntry, error) {
	if m.MockEntries != nil {
		return m.MockEntries(skip, limit)
	}
	return nil, nil
}

func (m *MockAuditService) Count() (int64, error) {
	if m.MockCount != nil {
		return m.MockCount()
	}
	return 0, nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}
