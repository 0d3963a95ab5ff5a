package auth

import "timetrack/internal/model"

// Permission is an atomic capability string checked independently of role
// hierarchy depth.
type Permission string

const (
	PermManageUsers    Permission = "manage_users"
	PermManageProjects Permission = "manage_projects"
	PermViewAllLogs    Permission = "view_all_logs"
	PermExportData     Permission = "export_data"
	PermManageRoles    Permission = "manage_roles"
)

// rolePermissions is the static role to permission table. super_admin is a
// superset of admin, which is a superset of user.
var rolePermissions = map[model.Role][]Permission{
	model.RoleUser: {},
	model.RoleAdmin: {
		PermManageUsers,
		PermManageProjects,
		PermViewAllLogs,
		PermExportData,
	},
	model.RoleSuperAdmin: {
		PermManageUsers,
		PermManageProjects,
		PermViewAllLogs,
		PermExportData,
		PermManageRoles,
	},
}

// HasPermission reports whether role carries the given permission.
func HasPermission(role model.Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
