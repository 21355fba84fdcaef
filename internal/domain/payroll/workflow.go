package payroll

import "github.com/meridianhq/payroll-backend-go/internal/domain/user"

// Action enum - every status transition an actor can attempt.
type Action string

const (
	ActionUpdate   Action = "update"
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionMarkPaid Action = "mark_paid"
	ActionReopen   Action = "reopen"
	ActionDelete   Action = "delete"
)

// TransitionRule describes one row of the workflow table: which statuses
// the action may start from, where it lands, and the capability required
// to trigger it. The table is data so new roles or transitions extend it
// without changing the state machine shape.
type TransitionRule struct {
	From       []Status
	To         Status
	Permission user.Permission
}

var transitionRules = map[Action]TransitionRule{
	ActionUpdate:   {From: []Status{StatusDraft}, To: StatusDraft, Permission: user.PermissionPayrollPrepare},
	ActionSubmit:   {From: []Status{StatusDraft}, To: StatusSubmitted, Permission: user.PermissionPayrollSubmit},
	ActionApprove:  {From: []Status{StatusSubmitted}, To: StatusApproved, Permission: user.PermissionPayrollApprove},
	ActionReject:   {From: []Status{StatusSubmitted}, To: StatusRejected, Permission: user.PermissionPayrollReject},
	ActionMarkPaid: {From: []Status{StatusApproved}, To: StatusPaid, Permission: user.PermissionPayrollMarkPaid},
	ActionReopen:   {From: []Status{StatusRejected}, To: StatusDraft, Permission: user.PermissionPayrollReopen},
	ActionDelete:   {From: []Status{StatusDraft}, To: "", Permission: user.PermissionPayrollPrepare},
}

// RuleFor returns the transition rule for an action. The bool is false for
// unknown actions.
func RuleFor(action Action) (TransitionRule, bool) {
	rule, ok := transitionRules[action]
	return rule, ok
}

// CanTransition reports whether the action is legal from the given status.
// Master submissions never transition.
func CanTransition(current Status, action Action) bool {
	if current == StatusMaster {
		return false
	}
	rule, ok := transitionRules[action]
	if !ok {
		return false
	}
	for _, from := range rule.From {
		if from == current {
			return true
		}
	}
	return false
}

// Guard validates an attempted transition against the rule table and the
// actor's role capabilities. It returns a typed failure, never a silent
// no-op.
func Guard(current Status, action Action, role user.Role) error {
	rule, ok := transitionRules[action]
	if !ok || !CanTransition(current, action) {
		return &InvalidTransitionError{Current: current, Action: action}
	}
	if !user.HasPermission(role, rule.Permission) {
		return &PermissionError{Role: role, Required: rule.Permission}
	}
	return nil
}
