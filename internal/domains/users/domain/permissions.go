package domain

// Permission names an action a role may perform.
type Permission string

const (
	PermReadAll        Permission = "read:all"
	PermReadOwn        Permission = "read:own"
	PermWriteAll       Permission = "write:all"
	PermWriteFinance   Permission = "write:finance"
	PermWriteCRM       Permission = "write:crm"
	PermWriteInventory Permission = "write:inventory"
	PermDeleteAll      Permission = "delete:all"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin:      {PermReadAll, PermWriteAll, PermDeleteAll},
	RoleManager:    {PermReadAll, PermWriteFinance, PermWriteCRM, PermWriteInventory},
	RoleAccountant: {PermReadAll, PermWriteFinance},
	RoleSales:      {PermReadAll, PermWriteCRM},
	RoleUser:       {PermReadOwn},
}

// Permissions lists what role grants. Unknown roles get nothing.
func Permissions(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether role grants permission. write:all satisfies any write:* permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
		if p == PermWriteAll && isWrite(permission) {
			return true
		}
	}
	return false
}

func isWrite(p Permission) bool {
	return len(p) > len("write:") && p[:len("write:")] == "write:"
}
