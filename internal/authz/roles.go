package authz

const (
	RoleSales      = 10
	RoleOperations = 20
	RoleAudit      = 30
	RoleManagement = 40
	RoleAdmin      = 50
)

var roleNames = map[int]string{
	RoleSales:      "sales",
	RoleOperations: "operations",
	RoleAudit:      "audit",
	RoleManagement: "management",
	RoleAdmin:      "admin",
}

// Name returns the role label, or "" for unknown ids.
func Name(roleID int) string { return roleNames[roleID] }

func Known(roleID int) bool {
	_, ok := roleNames[roleID]
	return ok
}

// IsElevated roles act on any lead, not only their own.
func IsElevated(roleID int) bool {
	return roleID == RoleOperations || roleID == RoleManagement || roleID == RoleAdmin
}

func IsReadOnly(roleID int) bool {
	return roleID == RoleAudit
}

// CanViewAll reports whether a role may read leads it does not own.
func CanViewAll(roleID int) bool {
	return IsElevated(roleID) || IsReadOnly(roleID)
}

// Writers are the roles that may change pipeline state.
var Writers = []int{RoleSales, RoleOperations, RoleManagement, RoleAdmin}
