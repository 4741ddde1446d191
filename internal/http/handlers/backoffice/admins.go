package backoffice

import (
	"github.com/salesdesk-next/internal/authz"
	"github.com/salesdesk-next/internal/constants"
	"github.com/salesdesk-next/internal/http/response"
	"github.com/salesdesk-next/internal/models"

	"github.com/gin-gonic/gin"
)

var knownAdminRoles = map[string]struct{}{
	constants.RoleSuperAdmin:   {},
	constants.RoleAdminControl: {},
	constants.RoleBackoffice:   {},
	constants.RoleFinance:      {},
	constants.RoleSale:         {},
	constants.RoleWarehouse:    {},
}

func builtinImmutableRoles() map[string]struct{} {
	immutable := make(map[string]struct{})
	for _, seed := range authz.BuiltinRoleSeeds() {
		if !seed.Immutable {
			continue
		}
		if normalized, err := authz.NormalizeRole(seed.Role); err == nil {
			immutable[normalized] = struct{}{}
		}
	}
	return immutable
}

// ListAdmins 员工列表
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, admins)
}

// CreateAdminRequest 新建员工请求
type CreateAdminRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required"`
	IsSuper     bool   `json:"is_super"`
}

// CreateAdmin 新建员工
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := knownAdminRoles[req.Role]; !ok {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}

	existing, err := h.AdminRepo.GetByUsername(req.Username)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if existing != nil {
		respondError(c, response.CodeConflict, "error.bad_request", nil)
		return
	}

	hash, err := h.AuthService.HashPassword(req.Password)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	admin := &models.Admin{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: hash,
		Role:         req.Role,
		IsSuper:      req.IsSuper || req.Role == constants.RoleSuperAdmin,
	}
	if err := h.AdminRepo.Create(admin); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	if !admin.IsSuper {
		if err := h.AuthzService.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
			requestLog(c).Warnw("admin_role_assign_failed", "admin_id", admin.ID, "role", admin.Role, "error", err)
		}
	}

	requestLog(c).Infow("admin_created", "admin_id", admin.ID, "username", admin.Username, "role", admin.Role)
	response.Success(c, admin)
}

// UpdateAdminRequest 更新员工请求
type UpdateAdminRequest struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required"`
	IsSuper     bool   `json:"is_super"`
	Password    string `json:"password" binding:"omitempty,min=8"`
}

// UpdateAdmin 更新员工资料与角色
func (h *Handler) UpdateAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if _, ok := knownAdminRoles[req.Role]; !ok {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}

	admin.DisplayName = req.DisplayName
	admin.Role = req.Role
	admin.IsSuper = req.IsSuper || req.Role == constants.RoleSuperAdmin
	if req.Password != "" {
		hash, err := h.AuthService.HashPassword(req.Password)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		admin.PasswordHash = hash
		admin.TokenVersion++
	}
	if err := h.AdminRepo.Update(admin); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	if !admin.IsSuper {
		if err := h.AuthzService.SetAdminRoles(admin.ID, []string{admin.Role}); err != nil {
			requestLog(c).Warnw("admin_role_assign_failed", "admin_id", admin.ID, "role", admin.Role, "error", err)
		}
	}

	requestLog(c).Infow("admin_updated", "admin_id", admin.ID, "role", admin.Role)
	response.Success(c, admin)
}

// DeleteAdmin 删除员工
func (h *Handler) DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	selfID, ok := getAdminID(c)
	if !ok {
		return
	}
	if id == selfID {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}

	if err := h.AuthzService.SetAdminRoles(id, nil); err != nil {
		requestLog(c).Warnw("admin_role_clear_failed", "admin_id", id, "error", err)
	}
	if err := h.AdminRepo.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	requestLog(c).Infow("admin_deleted", "admin_id", id, "deleted_by", selfID)
	response.Success(c, nil)
}

// ListRoles 角色列表
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// GetRolePolicies 查询角色策略
func (h *Handler) GetRolePolicies(c *gin.Context) {
	role := c.Param("role")
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	response.Success(c, policies)
}

// RolePolicyRequest 角色策略授予/撤销请求
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// GrantRolePolicy 为角色授予策略
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	role := c.Param("role")
	if h.isBuiltinRole(role) {
		respondError(c, response.CodeBadRequest, "error.role_builtin_immutable", nil)
		return
	}

	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	requestLog(c).Infow("role_policy_granted", "role", role, "object", req.Object, "action", req.Action)
	response.Success(c, nil)
}

// RevokeRolePolicy 撤销角色策略
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	role := c.Param("role")
	if h.isBuiltinRole(role) {
		respondError(c, response.CodeBadRequest, "error.role_builtin_immutable", nil)
		return
	}

	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	requestLog(c).Infow("role_policy_revoked", "role", role, "object", req.Object, "action", req.Action)
	response.Success(c, nil)
}

// SetAdminRolesRequest 设置员工角色请求
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetAdminRoles 覆盖设置员工的授权角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}

	if err := h.AuthzService.SetAdminRoles(id, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	requestLog(c).Infow("admin_roles_set", "admin_id", id, "roles", req.Roles)
	response.Success(c, nil)
}

// GetAdminRoles 查询员工的授权角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

func (h *Handler) isBuiltinRole(role string) bool {
	normalized, err := authz.NormalizeRole(role)
	if err != nil {
		return false
	}
	_, ok := builtinImmutableRoles()[normalized]
	return ok
}
