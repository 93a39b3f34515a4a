package api

import (
	"accounthub/internal/entity"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Register 开放注册接口，注册成功后直接发放会话令牌
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AuthRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accountService.Register(ctx, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(detail.AccountSummary)
	if err != nil {
		logrus.WithError(err).Error("failed to create token for account")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusCreated, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   *detail,
	})
}

// Login 名称加密码登录。认证失败统一返回 401，不区分账户不存在与密码错误。
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accountService.Authenticate(ctx, req.Name, req.Password)
	if err != nil {
		logrus.WithField("name", req.Name).Warn("login attempt failed")
		ServiceError(c, err)
		return
	}

	if !detail.IsActive {
		ErrorResponse(c, http.StatusForbidden, ErrCodeAccountDisabled, "账户已被禁用")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(detail.AccountSummary)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   *detail,
	})
}

// Me 返回当前登录账户的完整视图
func (h *HTTPHandler) Me(c *gin.Context) {
	acct := CurrentAccount(c)
	if acct == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accountService.FindByIdentifier(ctx, entity.RefFromID(acct.ID).String())
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
