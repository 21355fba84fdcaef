package user

type Role string

const (
	RoleHR        Role = "hr"        // Prepares and submits payroll
	RoleFinance   Role = "finance"   // Approves, rejects, and pays payroll
	RoleExecutive Role = "executive" // Override - holds both capability sets
)

// Actor is the authenticated principal acting on a submission, as carried
// in the access-token claims. Identity records (passwords, OAuth links)
// live in the main directory service, not here.
type Actor struct {
	UserID    string
	Email     string
	CompanyID string
	Role      Role
}

// CanPrepare checks if the actor can create and edit draft submissions
func (a *Actor) CanPrepare() bool {
	return HasPermission(a.Role, PermissionPayrollPrepare)
}

// CanApprove checks if the actor can act on submitted payroll
func (a *Actor) CanApprove() bool {
	return HasPermission(a.Role, PermissionPayrollApprove)
}
