package sql

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"accounthub/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestRepo(t *testing.T) *GormRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "accounts.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&entity.DbAccount{}, &entity.DbAccountProfile{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return NewGormRepository(db)
}

func testAccount(i int) *entity.DbAccount {
	return &entity.DbAccount{
		Name:         fmt.Sprintf("user-%03d", i),
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhash",
		Email:        fmt.Sprintf("user-%03d@example.com", i),
		Mobile:       fmt.Sprintf("139%08d", i),
		Role:         entity.AccountRoleUser,
		IsActive:     true,
	}
}

func TestCreateAccountCreatesProfileAtomically(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var profiles int64
	if err := repo.db.Model(&entity.DbAccountProfile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	if profiles != 0 {
		t.Fatalf("expected no profiles before create, got %d", profiles)
	}

	acct := testAccount(1)
	profile := &entity.DbAccountProfile{Company: "ACME", Position: "engineer"}
	if err := repo.CreateAccount(ctx, acct, profile); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}
	if acct.ID == 0 {
		t.Fatal("expected generated account id")
	}
	if acct.UUID == "" {
		t.Fatal("expected uuid to be assigned at creation")
	}
	if profile.UserID != acct.ID {
		t.Fatalf("expected profile user_id %d, got %d", acct.ID, profile.UserID)
	}

	var stored entity.DbAccountProfile
	if err := repo.db.Where("user_id = ?", acct.ID).First(&stored).Error; err != nil {
		t.Fatalf("expected exactly one profile row for the new account: %v", err)
	}
	if stored.Company != "ACME" {
		t.Fatalf("expected company ACME, got %s", stored.Company)
	}
}

func TestCreateAccountDuplicateName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testAccount(1)
	if err := repo.CreateAccount(ctx, first, nil); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}

	dup := testAccount(2)
	dup.Name = first.Name
	err := repo.CreateAccount(ctx, dup, nil)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}

	// The failed transaction must not leave a second account or profile.
	accounts, err := repo.CountAccounts(ctx)
	if err != nil {
		t.Fatalf("failed to count accounts: %v", err)
	}
	if accounts != 1 {
		t.Fatalf("expected 1 account, got %d", accounts)
	}
	var profiles int64
	if err := repo.db.Model(&entity.DbAccountProfile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	if profiles != 1 {
		t.Fatalf("expected 1 profile, got %d", profiles)
	}
}

func TestGetAccountJoinedByIDAndUUID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	acct := testAccount(1)
	if err := repo.CreateAccount(ctx, acct, &entity.DbAccountProfile{Address: "1 Main St"}); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}

	byID, profileByID, err := repo.GetAccountJoined(ctx, entity.RefFromID(acct.ID))
	if err != nil {
		t.Fatalf("unexpected error loading by id: %v", err)
	}
	byUUID, profileByUUID, err := repo.GetAccountJoined(ctx, entity.ParseAccountRef(acct.UUID))
	if err != nil {
		t.Fatalf("unexpected error loading by uuid: %v", err)
	}

	if byID.ID != byUUID.ID || byID.UUID != byUUID.UUID {
		t.Fatal("id and uuid lookups must address the same account")
	}
	if profileByID.Address != "1 Main St" || profileByUUID.Address != "1 Main St" {
		t.Fatal("joined read must include profile fields")
	}
}

func TestGetAccountByRefNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetAccountByRef(ctx, entity.ParseAccountRef("no-such-uuid")); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.GetAccountByRef(ctx, entity.AccountRef{}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound for zero ref, got %v", err)
	}
}

func TestUpdateAccountByUUID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	acct := testAccount(1)
	if err := repo.CreateAccount(ctx, acct, &entity.DbAccountProfile{Company: "before", Position: "keeper"}); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}

	email := "new@example.com"
	company := "after"
	err := repo.UpdateAccount(ctx,
		entity.ParseAccountRef(acct.UUID),
		entity.AccountUpdates{Email: &email},
		entity.ProfileUpdates{Company: &company},
	)
	if err != nil {
		t.Fatalf("unexpected error updating account: %v", err)
	}

	updated, profile, err := repo.GetAccountJoined(ctx, entity.RefFromID(acct.ID))
	if err != nil {
		t.Fatalf("unexpected error reloading account: %v", err)
	}
	if updated.Email != email {
		t.Fatalf("expected email %s, got %s", email, updated.Email)
	}
	if profile.Company != company {
		t.Fatalf("expected company %s, got %s", company, profile.Company)
	}
	// Untouched fields stay put.
	if updated.Mobile != acct.Mobile {
		t.Fatalf("expected mobile unchanged, got %s", updated.Mobile)
	}
	if profile.Position != "keeper" {
		t.Fatalf("expected position unchanged, got %s", profile.Position)
	}
}

func TestUpdateAccountMissingRef(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	email := "nobody@example.com"
	err := repo.UpdateAccount(ctx, entity.ParseAccountRef("missing-token"), entity.AccountUpdates{Email: &email}, entity.ProfileUpdates{})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteAccountRemovesBothRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	acct := testAccount(1)
	if err := repo.CreateAccount(ctx, acct, nil); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}

	if err := repo.DeleteAccount(ctx, entity.ParseAccountRef(acct.UUID)); err != nil {
		t.Fatalf("unexpected error deleting account: %v", err)
	}

	count, err := repo.CountAccounts(ctx)
	if err != nil {
		t.Fatalf("failed to count accounts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 accounts, got %d", count)
	}
	var profiles int64
	if err := repo.db.Model(&entity.DbAccountProfile{}).Count(&profiles).Error; err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	if profiles != 0 {
		t.Fatalf("expected 0 profiles, got %d", profiles)
	}
}

func TestDeleteAccountMissingRef(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateAccount(ctx, testAccount(1), nil); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}

	err := repo.DeleteAccount(ctx, entity.RefFromID(9999))
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected gorm.ErrRecordNotFound, got %v", err)
	}

	count, err := repo.CountAccounts(ctx)
	if err != nil {
		t.Fatalf("failed to count accounts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected account count unchanged, got %d", count)
	}
}

func TestListAccountsPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		if err := repo.CreateAccount(ctx, testAccount(i), nil); err != nil {
			t.Fatalf("unexpected error creating account %d: %v", i, err)
		}
	}

	page2, meta, err := repo.ListAccounts(ctx, &entity.AccountQuery{BaseParams: entity.BaseParams{Page: 2, PageSize: 10}})
	if err != nil {
		t.Fatalf("unexpected error listing accounts: %v", err)
	}
	if meta.Total != 25 {
		t.Fatalf("expected total 25, got %d", meta.Total)
	}
	if len(page2) != 10 {
		t.Fatalf("expected 10 rows on page 2, got %d", len(page2))
	}
	// id DESC with 25 rows: page 2 holds ids 15..6.
	if page2[0].ID != 15 || page2[9].ID != 6 {
		t.Fatalf("expected page 2 ids 15..6, got %d..%d", page2[0].ID, page2[9].ID)
	}

	page3, meta, err := repo.ListAccounts(ctx, &entity.AccountQuery{BaseParams: entity.BaseParams{Page: 3, PageSize: 10}})
	if err != nil {
		t.Fatalf("unexpected error listing accounts: %v", err)
	}
	if len(page3) != 5 {
		t.Fatalf("expected 5 rows on page 3, got %d", len(page3))
	}
	if meta.Total != 25 {
		t.Fatalf("expected total 25, got %d", meta.Total)
	}

	empty, meta, err := repo.ListAccounts(ctx, &entity.AccountQuery{BaseParams: entity.BaseParams{Page: 9, PageSize: 10}})
	if err != nil {
		t.Fatalf("empty pages must not error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(empty))
	}
	if meta.Total != 25 {
		t.Fatalf("expected true total on empty page, got %d", meta.Total)
	}
}

func TestFindConflictingFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	acct := testAccount(1)
	if err := repo.CreateAccount(ctx, acct, nil); err != nil {
		t.Fatalf("unexpected error creating account: %v", err)
	}

	taken, err := repo.FindConflictingFields(ctx, acct.Name, "fresh@example.com", acct.Mobile)
	if err != nil {
		t.Fatalf("unexpected error checking conflicts: %v", err)
	}
	if len(taken) != 2 || taken[0] != "name" || taken[1] != "mobile" {
		t.Fatalf("expected [name mobile], got %v", taken)
	}

	taken, err = repo.FindConflictingFields(ctx, "", "", "")
	if err != nil {
		t.Fatalf("unexpected error for blank candidates: %v", err)
	}
	if len(taken) != 0 {
		t.Fatalf("expected no conflicts for blank candidates, got %v", taken)
	}
}
