package api

import (
	"accounthub/internal/entity"
	"accounthub/internal/storage"
	"accounthub/internal/utils"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxAvatarBytes 头像上传大小上限
const maxAvatarBytes = 5 << 20

// ListAccounts 分页返回账户摘要，按创建先后倒序
func (h *HTTPHandler) ListAccounts(c *gin.Context) {
	var query entity.AccountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	accounts, meta, err := h.accountService.List(ctx, &query)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.AccountListResponse{
		Accounts: accounts,
		Meta:     meta,
	})
}

// GetAccount 按数字 id 或 uuid 查询单个账户的完整视图
func (h *HTTPHandler) GetAccount(c *gin.Context) {
	refToken := strings.TrimSpace(c.Param("ref"))
	if refToken == "" {
		BadRequest(c, ErrCodeInvalidRequest, "account reference is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accountService.FindByIdentifier(ctx, refToken)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateAccount 管理员创建账户，冲突响应标记具体冲突字段
func (h *HTTPHandler) CreateAccount(c *gin.Context) {
	var req entity.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accountService.AdminCreate(ctx, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// UpdateAccount 管理员更新账户与档案字段，两表在同一事务内写入
func (h *HTTPHandler) UpdateAccount(c *gin.Context) {
	refToken := strings.TrimSpace(c.Param("ref"))
	if refToken == "" {
		BadRequest(c, ErrCodeInvalidRequest, "account reference is required")
		return
	}

	var req entity.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accountService.Update(ctx, refToken, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// DeleteAccount 管理员删除账户，账户与档案记录一并移除
func (h *HTTPHandler) DeleteAccount(c *gin.Context) {
	refToken := strings.TrimSpace(c.Param("ref"))
	if refToken == "" {
		BadRequest(c, ErrCodeInvalidRequest, "account reference is required")
		return
	}

	requester := CurrentAccount(c)
	if requester != nil && requester.Matches(entity.ParseAccountRef(refToken)) {
		BadRequest(c, ErrCodeCannotDeleteSelf, "cannot delete current account")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accountService.Delete(ctx, refToken); err != nil {
		ServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadAvatar 上传账户头像。本人或管理员可操作；
// 支持 multipart 文件和内联 base64/data URL 两种提交方式。
func (h *HTTPHandler) UploadAvatar(c *gin.Context) {
	refToken := strings.TrimSpace(c.Param("ref"))
	if refToken == "" {
		BadRequest(c, ErrCodeInvalidRequest, "account reference is required")
		return
	}

	requester := CurrentAccount(c)
	if requester == nil {
		Unauthorized(c, "authentication required")
		return
	}
	if !requester.IsAdmin() && !requester.Matches(entity.ParseAccountRef(refToken)) {
		Forbidden(c, "无权修改该账户头像")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	detail, err := h.accountService.FindByIdentifier(ctx, refToken)
	if err != nil {
		ServiceError(c, err)
		return
	}

	data, ext, err := h.readAvatarPayload(c)
	if err != nil {
		BadRequest(c, ErrCodeInvalidRequest, err.Error())
		return
	}
	if len(data) > maxAvatarBytes {
		BadRequest(c, ErrCodeInvalidRequest, "avatar exceeds size limit")
		return
	}

	storedPath, err := h.storage.Save(ctx, data, storage.SaveOptions{
		Category:  "avatars",
		Extension: ext,
		BaseName:  detail.UUID,
	})
	if err != nil {
		logrus.WithError(err).WithField("account", detail.UUID).Error("failed to store avatar")
		InternalError(c, "failed to store avatar")
		return
	}

	avatarURL := h.publicURL(storedPath)
	if _, err := h.accountService.Update(ctx, refToken, &entity.AccountUpdateRequest{Avatar: &avatarURL}); err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.AvatarUploadResponse{Avatar: avatarURL})
}

// readAvatarPayload 读取 multipart 文件或 JSON 内联 base64 负载
func (h *HTTPHandler) readAvatarPayload(c *gin.Context) ([]byte, string, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
		if err != nil {
			return nil, "", err
		}

		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
		if ext == "" {
			ext = utils.ExtensionFromMime(http.DetectContentType(data))
		}
		if ext == "" {
			ext = "bin"
		}
		return data, ext, nil
	}

	var req struct {
		Payload string `json:"payload" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, "", err
	}
	return utils.DecodeMediaPayload(req.Payload)
}
