package user

type Permission string

const (
	// Payroll submissions
	PermissionPayrollView     Permission = "payroll.view"
	PermissionPayrollPrepare  Permission = "payroll.prepare"
	PermissionPayrollSubmit   Permission = "payroll.submit"
	PermissionPayrollApprove  Permission = "payroll.approve"
	PermissionPayrollReject   Permission = "payroll.reject"
	PermissionPayrollMarkPaid Permission = "payroll.mark_paid"
	PermissionPayrollReopen   Permission = "payroll.reopen"

	// Master template
	PermissionPayrollManageMaster Permission = "payroll.manage_master"
)

// RolePermissions maps roles to their permissions. The workflow guard
// consults this table, so extending the rule set (e.g. a new override
// role) is a data change, not a new branch in the state machine.
var RolePermissions = map[Role][]Permission{
	RoleHR: {
		PermissionPayrollView,
		PermissionPayrollPrepare,
		PermissionPayrollSubmit,
		PermissionPayrollReopen,
		PermissionPayrollManageMaster,
	},
	RoleFinance: {
		PermissionPayrollView,
		PermissionPayrollApprove,
		PermissionPayrollReject,
		PermissionPayrollMarkPaid,
	},
	RoleExecutive: {
		// Executive holds every payroll permission
		PermissionPayrollView,
		PermissionPayrollPrepare,
		PermissionPayrollSubmit,
		PermissionPayrollApprove,
		PermissionPayrollReject,
		PermissionPayrollMarkPaid,
		PermissionPayrollReopen,
		PermissionPayrollManageMaster,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
