package service

import (
	"context"

	"accounthub/internal/model"
)

// UniquenessValidator pre-checks candidate login fields against existing
// accounts before a creation path runs. It is a fast, friendly check only:
// the authoritative guarantee stays with the storage layer's unique indexes,
// whose violations are mapped to the same Conflict kind as a fallback.
type UniquenessValidator struct {
	repo model.Repository
}

// NewUniquenessValidator 创建唯一性校验器
func NewUniquenessValidator(repo model.Repository) *UniquenessValidator {
	return &UniquenessValidator{repo: repo}
}

// Validate checks any subset of name/email/mobile (blank values are skipped)
// and returns a Conflict naming the first offending field.
func (v *UniquenessValidator) Validate(ctx context.Context, name, email, mobile string) error {
	taken, err := v.repo.FindConflictingFields(ctx, name, email, mobile)
	if err != nil {
		return storageError("uniqueness check", err)
	}
	if len(taken) > 0 {
		return conflictError(taken[0])
	}
	return nil
}
