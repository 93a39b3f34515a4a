package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"accounthub/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	currentAccountContextKey = "current-account"
)

// RequestAccount 存储请求上下文中的认证账户信息
type RequestAccount struct {
	ID   uint
	UUID string
	Name string
	Role string
}

// IsAdmin 判断账户是否具有管理员权限
func (a *RequestAccount) IsAdmin() bool {
	if a == nil {
		return false
	}
	return a.Role == entity.AccountRoleAdmin
}

// Matches reports whether the given id-or-uuid token resolves to this
// account.
func (a *RequestAccount) Matches(ref entity.AccountRef) bool {
	if a == nil {
		return false
	}
	if ref.ID != 0 {
		return ref.ID == a.ID
	}
	return ref.UUID != "" && ref.UUID == a.UUID
}

// AuthMiddleware JWT 认证中间件
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "缺少授权头",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "无效的授权头格式",
			})
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "缺少 Bearer Token",
			})
			return
		}

		claims, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Warn("failed to parse jwt token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeSessionExpired,
				Message: "Token 无效或已过期",
			})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		acct, err := h.repo.GetAccountByRef(ctx, entity.RefFromID(claims.AccountID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
					Code:    ErrCodeAccountNotFound,
					Message: "账户不存在",
				})
				return
			}
			logrus.WithError(err).WithField("account_id", claims.AccountID).Error("failed to load account")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "验证账户失败",
			})
			return
		}

		if !acct.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeAccountDisabled,
				Message: "账户已被禁用",
			})
			return
		}

		requestAccount := &RequestAccount{
			ID:   acct.ID,
			UUID: acct.UUID,
			Name: acct.Name,
			Role: acct.Role,
		}

		c.Set(currentAccountContextKey, requestAccount)
		c.Next()
	}
}

// RequireAdmin 管理员权限守卫中间件
func (h *HTTPHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := CurrentAccount(c)
		if acct == nil || !acct.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, APIError{
				Code:    ErrCodeForbidden,
				Message: "需要管理员权限",
			})
			return
		}
		c.Next()
	}
}

// CurrentAccount 从上下文获取当前认证账户
func CurrentAccount(c *gin.Context) *RequestAccount {
	value, exists := c.Get(currentAccountContextKey)
	if !exists {
		return nil
	}
	acct, ok := value.(*RequestAccount)
	if !ok {
		return nil
	}
	return acct
}
