package auth

import "strings"

// Role is the admin privilege level, in increasing order of privilege:
// pending accounts are awaiting approval and may not touch content,
// admins manage their own content, super-admins manage everything
// including other admin accounts.
type Role string

const (
	RolePending    Role = "pending"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSuperAdmin):
		return RoleSuperAdmin
	default:
		return RolePending
	}
}

// CanPublish reports whether the role may create content at all.
func CanPublish(role Role) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// CanMutate decides ownership-based write access to a single content
// item: super-admins mutate anything, admins only what they own,
// pending accounts nothing.
func CanMutate(role Role, identityID, ownerID string) bool {
	switch role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return identityID != "" && identityID == ownerID
	default:
		return false
	}
}

// CanManageAdmins gates the admin-account management surface
// (approvals, rejections, direct creation, deletion, listings).
func CanManageAdmins(role Role) bool {
	return role == RoleSuperAdmin
}
