package model

import (
	"context"

	"accounthub/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 账户读取
	GetAccountByRef(ctx context.Context, ref entity.AccountRef) (*entity.DbAccount, error)
	GetAccountByName(ctx context.Context, name string) (*entity.DbAccount, error)
	GetAccountJoined(ctx context.Context, ref entity.AccountRef) (*entity.DbAccount, *entity.DbAccountProfile, error)
	ListAccounts(ctx context.Context, params *entity.AccountQuery) ([]entity.DbAccount, *entity.Meta, error)
	CountAccounts(ctx context.Context) (int64, error)
	FindConflictingFields(ctx context.Context, name, email, mobile string) ([]string, error)

	// 账户+扩展资料的事务写入
	CreateAccount(ctx context.Context, acct *entity.DbAccount, profile *entity.DbAccountProfile) error
	UpdateAccount(ctx context.Context, ref entity.AccountRef, acctUpdates entity.AccountUpdates, profileUpdates entity.ProfileUpdates) error
	DeleteAccount(ctx context.Context, ref entity.AccountRef) error
}
