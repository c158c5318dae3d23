package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "moderator",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/posts", Action: "GET"},
				{Object: "/admin/posts/:id", Action: "*"},
				{Object: "/admin/posts/:id/restore", Action: "POST"},
				{Object: "/admin/replies", Action: "GET"},
				{Object: "/admin/replies/:id", Action: "*"},
				{Object: "/admin/replies/:id/restore", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "support",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/users", Action: "GET"},
				{Object: "/admin/users/:id", Action: "GET"},
				{Object: "/admin/users/:id", Action: "PATCH"},
				{Object: "/admin/users/:id/ban", Action: "POST"},
				{Object: "/admin/users/:id/unban", Action: "POST"},
				{Object: "/admin/user-login-logs", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "operations",
			Inherits: []string{"moderator", "support"},
			Policies: []Policy{
				{Object: "/admin/users/batch-status", Action: "POST"},
				{Object: "/admin/counters/reconcile", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// IsBuiltinRole 判断是否系统预置的不可删除角色
func IsBuiltinRole(role string) bool {
	name, err := NormalizeRole(role)
	if err != nil {
		return false
	}
	for _, seed := range BuiltinRoleSeeds() {
		if !seed.Immutable {
			continue
		}
		if builtin, err := NormalizeRole(seed.Role); err == nil && builtin == name {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
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
