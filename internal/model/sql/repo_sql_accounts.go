package sql

import (
	"context"
	"fmt"
	"strings"

	"accounthub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAccountByRef loads an account by its resolved identifier (id or uuid).
func (r *GormRepository) GetAccountByRef(ctx context.Context, ref entity.AccountRef) (*entity.DbAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if ref.IsZero() {
		return nil, gorm.ErrRecordNotFound
	}

	var acct entity.DbAccount
	if err := r.db.WithContext(ctx).Where(ref.Column()+" = ?", ref.Value()).First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetAccountByName loads an account by its login name.
func (r *GormRepository) GetAccountByName(ctx context.Context, name string) (*entity.DbAccount, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("name is empty")
	}

	var acct entity.DbAccount
	if err := r.db.WithContext(ctx).Where("name = ?", trimmed).First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetAccountJoined loads an account together with its profile row. A missing
// profile yields an empty profile rather than an error; the account row is
// authoritative for existence.
func (r *GormRepository) GetAccountJoined(ctx context.Context, ref entity.AccountRef) (*entity.DbAccount, *entity.DbAccountProfile, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	acct, err := r.GetAccountByRef(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	var profile entity.DbAccountProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", acct.ID).First(&profile).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, nil, err
		}
		profile = entity.DbAccountProfile{UserID: acct.ID}
	}
	return acct, &profile, nil
}

// ListAccounts returns a page of accounts ordered most-recent first together
// with the total count.
func (r *GormRepository) ListAccounts(ctx context.Context, params *entity.AccountQuery) ([]entity.DbAccount, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbAccount{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var accounts []entity.DbAccount
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&accounts).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return accounts, meta, nil
}

// CountAccounts returns total account count.
func (r *GormRepository) CountAccounts(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbAccount{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindConflictingFields reports which of the candidate name/email/mobile
// values are already taken. Blank candidates are skipped. The result lists
// column names in a stable order: name, email, mobile.
func (r *GormRepository) FindConflictingFields(ctx context.Context, name, email, mobile string) ([]string, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	checks := []struct {
		column string
		value  string
	}{
		{"name", strings.TrimSpace(name)},
		{"email", strings.TrimSpace(email)},
		{"mobile", strings.TrimSpace(mobile)},
	}

	var taken []string
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		var count int64
		err := r.db.WithContext(ctx).Model(&entity.DbAccount{}).
			Where(check.column+" = ?", check.value).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			taken = append(taken, check.column)
		}
	}
	return taken, nil
}

// CreateAccount persists the account and its profile in a single
// transaction. The profile references the generated account id; a uuid is
// assigned when the caller has not provided one.
func (r *GormRepository) CreateAccount(ctx context.Context, acct *entity.DbAccount, profile *entity.DbAccountProfile) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if acct == nil {
		return fmt.Errorf("account is nil")
	}
	if profile == nil {
		profile = &entity.DbAccountProfile{}
	}
	if strings.TrimSpace(acct.UUID) == "" {
		acct.UUID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acct).Error; err != nil {
			return err
		}
		profile.UserID = acct.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return nil
	})
}

// UpdateAccount applies the account-scoped and profile-scoped update sets
// inside one transaction. The ref is resolved to the account row first; if it
// does not resolve, nothing is committed and gorm.ErrRecordNotFound is
// returned.
func (r *GormRepository) UpdateAccount(ctx context.Context, ref entity.AccountRef, acctUpdates entity.AccountUpdates, profileUpdates entity.ProfileUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if ref.IsZero() {
		return gorm.ErrRecordNotFound
	}
	if acctUpdates.IsEmpty() && profileUpdates.IsEmpty() {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acct entity.DbAccount
		if err := tx.Where(ref.Column()+" = ?", ref.Value()).First(&acct).Error; err != nil {
			return err
		}

		if !acctUpdates.IsEmpty() {
			if err := tx.Model(&entity.DbAccount{}).Where("id = ?", acct.ID).Updates(acctUpdates.ToMap()).Error; err != nil {
				return err
			}
		}
		if !profileUpdates.IsEmpty() {
			if err := tx.Model(&entity.DbAccountProfile{}).Where("user_id = ?", acct.ID).Updates(profileUpdates.ToMap()).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteAccount removes the account row and its profile row in one
// transaction. A ref that resolves to nothing returns
// gorm.ErrRecordNotFound and deletes no rows.
func (r *GormRepository) DeleteAccount(ctx context.Context, ref entity.AccountRef) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if ref.IsZero() {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acct entity.DbAccount
		if err := tx.Where(ref.Column()+" = ?", ref.Value()).First(&acct).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.DbAccount{}, acct.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("user_id = ?", acct.ID).Delete(&entity.DbAccountProfile{}).Error; err != nil {
			return err
		}
		return nil
	})
}
