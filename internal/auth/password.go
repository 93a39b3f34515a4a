package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hasher 负责账户密码的加盐哈希与校验，工作因子由配置注入。
type Hasher struct {
	cost int
}

// NewHasher 创建密码哈希器。cost 超出 bcrypt 允许范围时回退到默认值。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash 对明文密码进行哈希处理
func (h *Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify 验证密码是否与存储的哈希值匹配。损坏的哈希按校验失败处理，不会 panic。
func (h *Hasher) Verify(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errors.New("stored password hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}
