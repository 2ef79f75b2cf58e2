package service

import (
	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/domain"
	"github.com/jotter-dev/jotter/internal/errors"
	"github.com/jotter-dev/jotter/internal/policy"
)

type AdminService interface {
	Accounts(actor *domain.Account, skip, limit int) ([]domain.Account, error)
	Account(actor *domain.Account, id domain.AccountId) (domain.Account, error)
	ChangeRole(actor *domain.Account, id domain.AccountId, role domain.Role) (domain.Account, domain.Role, error)
	ChangeStatus(actor *domain.Account, id domain.AccountId, active bool) (domain.Account, bool, error)
	DeleteAccount(actor *domain.Account, id domain.AccountId) error
}

type AdminStorage interface {
	AccountById(id domain.AccountId) (domain.Account, error)
	Accounts(skip, limit int) ([]domain.Account, error)
	UpdateRole(id domain.AccountId, role domain.Role) error
	UpdateStatus(id domain.AccountId, active bool) error
	DeleteAccount(id domain.AccountId) error
	DeleteRefreshSession(accountId domain.AccountId) error
}

type Admin struct {
	storage AdminStorage
	cfg     *config.Config
}

func NewAdmin(storage AdminStorage, cfg *config.Config) *Admin {
	return &Admin{storage: storage, cfg: cfg}
}

func (a *Admin) Accounts(actor *domain.Account, skip, limit int) ([]domain.Account, error) {
	if !actor.IsAdmin() {
		return nil, errors.NewForbidden("Admin role required")
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > a.cfg.Public.ListPageSize {
		limit = a.cfg.Public.ListPageSize
	}
	return a.storage.Accounts(skip, limit)
}

func (a *Admin) Account(actor *domain.Account, id domain.AccountId) (domain.Account, error) {
	if !actor.IsAdmin() {
		return domain.Account{}, errors.NewForbidden("Admin role required")
	}
	return a.storage.AccountById(id)
}

// ChangeRole moves the target between the user and admin roles. The role
// value is validated against the closed set; an admin cannot change
// their own role. The previous role is returned alongside the updated
// account so callers audit the value this mutation actually replaced.
func (a *Admin) ChangeRole(actor *domain.Account, id domain.AccountId, role domain.Role) (domain.Account, domain.Role, error) {
	if err := role.Validate(); err != nil {
		return domain.Account{}, "", err
	}
	target, err := a.manageableTarget(actor, id)
	if err != nil {
		return domain.Account{}, "", err
	}
	if err := a.storage.UpdateRole(id, role); err != nil {
		return domain.Account{}, "", err
	}
	prev := target.Role
	target.Role = role
	return target, prev, nil
}

// ChangeStatus activates or deactivates the target, returning the
// previous active flag. Deactivation also revokes the target's refresh
// session so the account can't keep minting access tokens; outstanding
// access tokens expire on their own.
func (a *Admin) ChangeStatus(actor *domain.Account, id domain.AccountId, active bool) (domain.Account, bool, error) {
	target, err := a.manageableTarget(actor, id)
	if err != nil {
		return domain.Account{}, false, err
	}
	if err := a.storage.UpdateStatus(id, active); err != nil {
		return domain.Account{}, false, err
	}
	if !active {
		if err := a.storage.DeleteRefreshSession(id); err != nil {
			return domain.Account{}, false, err
		}
	}
	prev := target.IsActive
	target.IsActive = active
	return target, prev, nil
}

func (a *Admin) DeleteAccount(actor *domain.Account, id domain.AccountId) error {
	if _, err := a.manageableTarget(actor, id); err != nil {
		return err
	}
	return a.storage.DeleteAccount(id)
}

// manageableTarget loads the target and applies the management policy:
// admin only, never the actor's own account.
func (a *Admin) manageableTarget(actor *domain.Account, id domain.AccountId) (domain.Account, error) {
	if !actor.IsAdmin() {
		return domain.Account{}, errors.NewForbidden("Admin role required")
	}
	target, err := a.storage.AccountById(id)
	if err != nil {
		return domain.Account{}, err
	}
	if !policy.CanManageAccount(actor, target) {
		return domain.Account{}, errors.NewForbidden("Admins cannot manage their own account")
	}
	return target, nil
}
