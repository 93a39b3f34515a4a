package entity

import "time"

type AuthRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Gender   int8   `json:"gender"`
}

type AuthLoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Account   AccountDetail `json:"account"`
}

// AccountCreateRequest is the administrative creation payload covering both
// the account and its profile.
type AccountCreateRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Gender   int8   `json:"gender"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	Birthday string `json:"birthday"`
}

// AccountUpdateRequest carries the mutable account fields and the profile
// fields in one payload; the service splits them before the transactional
// write. Name, uuid, and password are not updatable here.
type AccountUpdateRequest struct {
	Email    *string `json:"email,omitempty"`
	Mobile   *string `json:"mobile,omitempty"`
	Gender   *int8   `json:"gender,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Company  *string `json:"company,omitempty"`
	Position *string `json:"position,omitempty"`
	Address  *string `json:"address,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Birthday *string `json:"birthday,omitempty"`
}

// AccountQuery supports listing accounts with pagination.
type AccountQuery struct {
	BaseParams
}

type AccountListResponse struct {
	Accounts []AccountSummary `json:"accounts"`
	Meta     *Meta            `json:"meta"`
}

type AvatarUploadResponse struct {
	Avatar string `json:"avatar"`
}
