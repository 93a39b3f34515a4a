package service

import (
	"context"
	"errors"
	"strings"

	"accounthub/internal/auth"
	"accounthub/internal/entity"
	"accounthub/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// dummyPasswordHash keeps the work of a failed name lookup comparable to a
// real verification, so both authentication failure paths cost about the
// same.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountService owns the public account operations: registration,
// authentication, listing, lookup, transactional update/delete, and
// administrative creation. All multi-row mutation is delegated to the
// repository's transaction scopes.
type AccountService struct {
	repo   model.Repository
	hasher *auth.Hasher
	unique *UniquenessValidator
}

// NewAccountService 创建账户服务
func NewAccountService(repo model.Repository, hasher *auth.Hasher) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		unique: NewUniquenessValidator(repo),
	}
}

// Register creates an account with a minimal default profile. The name must
// not be taken; the very first account becomes admin.
func (s *AccountService) Register(ctx context.Context, req *entity.AuthRegisterRequest) (*entity.AccountDetail, error) {
	name := strings.TrimSpace(req.Name)

	if err := s.unique.Validate(ctx, name, "", ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(strings.TrimSpace(req.Password))
	if err != nil {
		return nil, storageError("password hashing", err)
	}

	role := entity.AccountRoleUser
	count, err := s.repo.CountAccounts(ctx)
	if err != nil {
		return nil, storageError("account count", err)
	}
	if count == 0 {
		role = entity.AccountRoleAdmin
	}

	acct := &entity.DbAccount{
		Name:         name,
		PasswordHash: hash,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:       strings.TrimSpace(req.Mobile),
		Gender:       req.Gender,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.CreateAccount(ctx, acct, &entity.DbAccountProfile{}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent create; the unique index is
			// the authority.
			return nil, &Error{Kind: KindConflict, Message: "account already exists", Err: err}
		}
		return nil, storageError("account creation", err)
	}

	return s.loadDetail(ctx, entity.RefFromID(acct.ID))
}

// Authenticate verifies the name/password pair. A missing name and a wrong
// password produce the identical error.
func (s *AccountService) Authenticate(ctx context.Context, name, password string) (*entity.AccountDetail, error) {
	acct, err := s.repo.GetAccountByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.hasher.Verify(dummyPasswordHash, password)
			return nil, errInvalidCredentials
		}
		return nil, storageError("account lookup", err)
	}

	if err := s.hasher.Verify(acct.PasswordHash, password); err != nil {
		return nil, errInvalidCredentials
	}

	return s.loadDetail(ctx, entity.RefFromID(acct.ID))
}

// List returns a page of account summaries ordered most-recent first plus
// the true total. Out-of-range parameters are normalised; empty pages are
// not errors.
func (s *AccountService) List(ctx context.Context, params *entity.AccountQuery) ([]entity.AccountSummary, *entity.Meta, error) {
	query := entity.AccountQuery{}
	if params != nil {
		query = *params
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	accounts, meta, err := s.repo.ListAccounts(ctx, &query)
	if err != nil {
		return nil, nil, storageError("account listing", err)
	}

	summaries := make([]entity.AccountSummary, 0, len(accounts))
	for idx := range accounts {
		summaries = append(summaries, entity.MakeAccountSummary(&accounts[idx]))
	}
	return summaries, meta, nil
}

// FindByIdentifier resolves an id-or-uuid token and returns the joined
// public view.
func (s *AccountService) FindByIdentifier(ctx context.Context, identifier string) (*entity.AccountDetail, error) {
	return s.loadDetail(ctx, entity.ParseAccountRef(identifier))
}

// Update splits the request into account-scoped and profile-scoped field
// sets and applies both in one repository transaction, then returns the
// refreshed joined view.
func (s *AccountService) Update(ctx context.Context, identifier string, req *entity.AccountUpdateRequest) (*entity.AccountDetail, error) {
	ref := entity.ParseAccountRef(identifier)

	acctUpdates := entity.AccountUpdates{
		Email:    req.Email,
		Mobile:   req.Mobile,
		Gender:   req.Gender,
		IsActive: req.IsActive,
	}
	profileUpdates := entity.ProfileUpdates{
		Company:  req.Company,
		Position: req.Position,
		Address:  req.Address,
		Avatar:   req.Avatar,
		Birthday: req.Birthday,
	}

	if err := s.repo.UpdateAccount(ctx, ref, acctUpdates, profileUpdates); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, notFoundError()
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, &Error{Kind: KindConflict, Message: "email or mobile already exists", Err: err}
		default:
			return nil, storageError("account update", err)
		}
	}

	return s.loadDetail(ctx, ref)
}

// Delete removes the account and its profile. A non-resolving identifier is
// reported as NotFound, never as silent success.
func (s *AccountService) Delete(ctx context.Context, identifier string) error {
	ref := entity.ParseAccountRef(identifier)

	if err := s.repo.DeleteAccount(ctx, ref); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError()
		}
		return storageError("account deletion", err)
	}

	logrus.WithField("account", ref.String()).Info("account deleted")
	return nil
}

// AdminCreate creates a full account+profile pair. Each of name, email, and
// mobile is checked independently so the Conflict names the offending field.
func (s *AccountService) AdminCreate(ctx context.Context, req *entity.AccountCreateRequest) (*entity.AccountDetail, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	mobile := strings.TrimSpace(req.Mobile)

	if err := s.unique.Validate(ctx, name, email, mobile); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(strings.TrimSpace(req.Password))
	if err != nil {
		return nil, storageError("password hashing", err)
	}

	role := strings.TrimSpace(req.Role)
	if role != entity.AccountRoleAdmin {
		role = entity.AccountRoleUser
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	acct := &entity.DbAccount{
		Name:         name,
		PasswordHash: hash,
		Email:        email,
		Mobile:       mobile,
		Gender:       req.Gender,
		Role:         role,
		IsActive:     isActive,
	}
	profile := &entity.DbAccountProfile{
		Company:  strings.TrimSpace(req.Company),
		Position: strings.TrimSpace(req.Position),
		Address:  strings.TrimSpace(req.Address),
		Avatar:   strings.TrimSpace(req.Avatar),
		Birthday: strings.TrimSpace(req.Birthday),
	}

	if err := s.repo.CreateAccount(ctx, acct, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &Error{Kind: KindConflict, Message: "account already exists", Err: err}
		}
		return nil, storageError("account creation", err)
	}

	return s.loadDetail(ctx, entity.RefFromID(acct.ID))
}

func (s *AccountService) loadDetail(ctx context.Context, ref entity.AccountRef) (*entity.AccountDetail, error) {
	acct, profile, err := s.repo.GetAccountJoined(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError()
		}
		return nil, storageError("account lookup", err)
	}
	detail := entity.MakeAccountDetail(acct, profile)
	return &detail, nil
}
