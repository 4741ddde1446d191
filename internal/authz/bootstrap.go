package authz

import (
	"fmt"

	"github.com/salesdesk-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// super_admin 走 IsSuper 旁路，不在此处授权。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleSale,
			Policies: []Policy{
				{Object: "/backoffice/orders", Action: "GET"},
				{Object: "/backoffice/orders", Action: "POST"},
				{Object: "/backoffice/orders/:id", Action: "GET"},
				{Object: "/backoffice/orders/:id", Action: "PUT"},
				{Object: "/backoffice/orders/:id/status", Action: "PATCH"},
				{Object: "/backoffice/orders/:id/slips", Action: "GET"},
				{Object: "/backoffice/orders/:id/slips", Action: "POST"},
				{Object: "/backoffice/slips/:id", Action: "PUT"},
				{Object: "/backoffice/slips/:id", Action: "DELETE"},
				{Object: "/backoffice/customers", Action: "*"},
				{Object: "/backoffice/customers/:id", Action: "*"},
				{Object: "/backoffice/products", Action: "GET"},
				{Object: "/backoffice/promotions", Action: "GET"},
				{Object: "/backoffice/bank-accounts", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleWarehouse,
			Policies: []Policy{
				{Object: "/backoffice/orders", Action: "GET"},
				{Object: "/backoffice/orders/:id", Action: "GET"},
				{Object: "/backoffice/orders/:id/status", Action: "PATCH"},
				{Object: "/backoffice/products", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleFinance,
			Inherits: []string{constants.RoleSale},
			Policies: []Policy{
				{Object: "/backoffice/orders/:id/accept-verification", Action: "POST"},
				{Object: "/backoffice/orders/:id/cancel-verification", Action: "POST"},
				{Object: "/backoffice/orders/:id/reconcile-summary", Action: "GET"},
				{Object: "/backoffice/slips/:id/check", Action: "POST"},
				{Object: "/backoffice/debts", Action: "GET"},
				{Object: "/backoffice/debts/follow-ups", Action: "*"},
				{Object: "/backoffice/bank-accounts", Action: "*"},
				{Object: "/backoffice/bank-accounts/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleBackoffice,
			Inherits: []string{constants.RoleSale, constants.RoleWarehouse},
			Policies: []Policy{
				{Object: "/backoffice/promotions", Action: "*"},
				{Object: "/backoffice/promotions/:id", Action: "*"},
				{Object: "/backoffice/products", Action: "*"},
				{Object: "/backoffice/products/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     constants.RoleAdminControl,
			Inherits: []string{constants.RoleBackoffice, constants.RoleFinance},
			Policies: []Policy{
				{Object: "/backoffice/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
