package domain

// Role is a demo user role
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleWorker     Role = "worker"
)

// Roles lists the known roles
var Roles = []Role{RoleAdmin, RoleSupervisor, RoleWorker}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Permission gates one inventory capability
type Permission string

const (
	PermView    Permission = "view"
	PermAdd     Permission = "add"
	PermEdit    Permission = "edit"
	PermDelete  Permission = "delete"
	PermImport  Permission = "import"
	PermExport  Permission = "export"
	PermReports Permission = "reports"
	PermBarcode Permission = "barcode"
)

// Permissions lists every permission
var Permissions = []Permission{
	PermView, PermAdd, PermEdit, PermDelete,
	PermImport, PermExport, PermReports, PermBarcode,
}

// PermissionSet is the set of permissions granted to one role
type PermissionSet map[Permission]bool

// PermissionMatrix maps each role to its granted permissions
type PermissionMatrix map[Role]PermissionSet

// Allows reports whether role holds perm
func (m PermissionMatrix) Allows(role Role, perm Permission) bool {
	return m[role][perm]
}

// DefaultPermissions returns a fresh copy of the built-in matrix
func DefaultPermissions() PermissionMatrix {
	all := func(except ...Permission) PermissionSet {
		set := make(PermissionSet, len(Permissions))
		for _, p := range Permissions {
			set[p] = true
		}
		for _, p := range except {
			set[p] = false
		}
		return set
	}
	return PermissionMatrix{
		RoleAdmin:      all(),
		RoleSupervisor: all(PermDelete),
		RoleWorker:     all(PermAdd, PermEdit, PermDelete, PermImport, PermExport),
	}
}

// Session is an authenticated user
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
}

// LoginResponse carries an issued access token
type LoginResponse struct {
	Token       string        `json:"token"`
	ExpiresAt   int64         `json:"expiresAt"`
	Session     Session       `json:"session"`
	Permissions PermissionSet `json:"permissions"`
}
