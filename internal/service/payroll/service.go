package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/meridianhq/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhq/payroll-backend-go/internal/domain/payroll"
	"github.com/meridianhq/payroll-backend-go/internal/domain/user"
)

type SubmissionServiceImpl struct {
	repo      payroll.SubmissionRepository
	directory employee.Directory
	calc      *Calculator
}

func NewSubmissionService(
	repo payroll.SubmissionRepository,
	directory employee.Directory,
	calc *Calculator,
) payroll.Service {
	return &SubmissionServiceImpl{
		repo:      repo,
		directory: directory,
		calc:      calc,
	}
}

// Helper to get the acting principal from JWT context
func actorFromContext(ctx context.Context) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return user.Actor{}, user.ErrInvalidActor
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return user.Actor{
		UserID:    userID,
		Email:     email,
		CompanyID: companyID,
		Role:      user.Role(role),
	}, nil
}

// ========== DRAFT LIFECYCLE ==========

func (s *SubmissionServiceImpl) Create(ctx context.Context, req payroll.CreateSubmissionRequest) (payroll.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SubmissionResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}
	if !actor.CanPrepare() {
		return payroll.SubmissionResponse{}, &payroll.PermissionError{Role: actor.Role, Required: user.PermissionPayrollPrepare}
	}

	terms, err := s.collectTerms(ctx, actor.CompanyID, req)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	sub := payroll.PayrollSubmission{
		ID:          uuid.Must(uuid.NewV7()).String(),
		CompanyID:   actor.CompanyID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Status:      payroll.StatusDraft,
		Lines:       s.computeLines(terms, req.PeriodMonth, req.PeriodYear),
	}
	sub.RecomputeTotals()

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	return payroll.NewSubmissionResponse(created), nil
}

func (s *SubmissionServiceImpl) Get(ctx context.Context, id string) (payroll.SubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionPayrollView) {
		return payroll.SubmissionResponse{}, &payroll.PermissionError{Role: actor.Role, Required: user.PermissionPayrollView}
	}

	sub, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	return payroll.NewSubmissionResponse(sub), nil
}

func (s *SubmissionServiceImpl) List(ctx context.Context, filter payroll.ListFilter) (payroll.ListSubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.ListSubmissionResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionPayrollView) {
		return payroll.ListSubmissionResponse{}, &payroll.PermissionError{Role: actor.Role, Required: user.PermissionPayrollView}
	}

	subs, err := s.repo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return payroll.ListSubmissionResponse{}, err
	}

	result := payroll.ListSubmissionResponse{
		Data:       make([]payroll.SubmissionResponse, 0, len(subs)),
		TotalCount: len(subs),
	}
	for _, sub := range subs {
		result.Data = append(result.Data, payroll.NewSubmissionResponse(sub))
	}

	return result, nil
}

func (s *SubmissionServiceImpl) Update(ctx context.Context, req payroll.UpdateSubmissionRequest) (payroll.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SubmissionResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	sub, err := s.repo.GetByID(ctx, req.ID, actor.CompanyID)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	if err := payroll.Guard(sub.Status, payroll.ActionUpdate, actor.Role); err != nil {
		return payroll.SubmissionResponse{}, err
	}

	if req.Employees != nil {
		terms := make([]payroll.CompensationTerms, 0, len(*req.Employees))
		for i := range *req.Employees {
			terms = append(terms, (*req.Employees)[i].ToTerms())
		}
		sub.Lines = s.computeLines(terms, sub.PeriodMonth, sub.PeriodYear)
	}
	sub.RecomputeTotals()

	updated, err := s.repo.UpdateDraft(ctx, sub)
	if err != nil {
		return payroll.SubmissionResponse{}, s.refreshConflict(ctx, err, req.ID, actor.CompanyID, payroll.ActionUpdate)
	}

	return payroll.NewSubmissionResponse(updated), nil
}

func (s *SubmissionServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	sub, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return err
	}

	if err := payroll.Guard(sub.Status, payroll.ActionDelete, actor.Role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, actor.CompanyID); err != nil {
		return s.refreshConflict(ctx, err, id, actor.CompanyID, payroll.ActionDelete)
	}
	return nil
}

// ========== WORKFLOW TRANSITIONS ==========

func (s *SubmissionServiceImpl) Submit(ctx context.Context, id string) (payroll.SubmissionResponse, error) {
	return s.transition(ctx, id, payroll.ActionSubmit, nil)
}

func (s *SubmissionServiceImpl) Approve(ctx context.Context, id string) (payroll.SubmissionResponse, error) {
	return s.transition(ctx, id, payroll.ActionApprove, nil)
}

func (s *SubmissionServiceImpl) Reject(ctx context.Context, id string, req payroll.RejectSubmissionRequest) (payroll.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SubmissionResponse{}, err
	}
	return s.transition(ctx, id, payroll.ActionReject, &req.Reason)
}

func (s *SubmissionServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.SubmissionResponse, error) {
	return s.transition(ctx, id, payroll.ActionMarkPaid, nil)
}

func (s *SubmissionServiceImpl) Reopen(ctx context.Context, id string) (payroll.SubmissionResponse, error) {
	return s.transition(ctx, id, payroll.ActionReopen, nil)
}

// transition performs one guarded status change as a single atomic
// read-modify-write. The guard runs against the loaded status; the store
// re-checks it with a compare-and-swap, so a racing transition on the same
// submission leaves exactly one winner and the loser sees the refreshed
// status in its InvalidTransitionError.
func (s *SubmissionServiceImpl) transition(ctx context.Context, id string, action payroll.Action, reason *string) (payroll.SubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	sub, err := s.repo.GetByID(ctx, id, actor.CompanyID)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	if err := payroll.Guard(sub.Status, action, actor.Role); err != nil {
		return payroll.SubmissionResponse{}, err
	}

	if action == payroll.ActionSubmit && len(sub.Lines) == 0 {
		return payroll.SubmissionResponse{}, payroll.ErrEmptySubmission
	}

	rule, _ := payroll.RuleFor(action)
	stamp := payroll.TransitionStamp{
		Actor:  actor.UserID,
		At:     time.Now().UTC(),
		Reason: reason,
	}

	updated, err := s.repo.UpdateStatus(ctx, id, actor.CompanyID, sub.Status, rule.To, stamp)
	if err != nil {
		return payroll.SubmissionResponse{}, s.refreshConflict(ctx, err, id, actor.CompanyID, action)
	}

	return payroll.NewSubmissionResponse(updated), nil
}

// refreshConflict converts a lost CAS race into an InvalidTransitionError
// carrying the now-current status. Other errors pass through untouched.
func (s *SubmissionServiceImpl) refreshConflict(ctx context.Context, err error, id, companyID string, action payroll.Action) error {
	if !errors.Is(err, payroll.ErrStatusConflict) {
		return err
	}
	current, getErr := s.repo.GetByID(ctx, id, companyID)
	if getErr != nil {
		return getErr
	}
	return &payroll.InvalidTransitionError{Current: current.Status, Action: action}
}

// ========== MASTER TEMPLATE ==========

func (s *SubmissionServiceImpl) GetMaster(ctx context.Context) (payroll.SubmissionResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionPayrollView) {
		return payroll.SubmissionResponse{}, &payroll.PermissionError{Role: actor.Role, Required: user.PermissionPayrollView}
	}

	master, err := s.repo.GetMaster(ctx, actor.CompanyID)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	return payroll.NewSubmissionResponse(master), nil
}

func (s *SubmissionServiceImpl) UpsertMaster(ctx context.Context, req payroll.UpsertMasterRequest) (payroll.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SubmissionResponse{}, err
	}

	actor, err := actorFromContext(ctx)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionPayrollManageMaster) {
		return payroll.SubmissionResponse{}, &payroll.PermissionError{Role: actor.Role, Required: user.PermissionPayrollManageMaster}
	}

	// Master templates carry no period; breakdowns are computed with a
	// zero period so no start date ever triggers proration.
	terms := make([]payroll.CompensationTerms, 0, len(req.Employees))
	for i := range req.Employees {
		terms = append(terms, req.Employees[i].ToTerms())
	}

	master := payroll.PayrollSubmission{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CompanyID: actor.CompanyID,
		Status:    payroll.StatusMaster,
		Lines:     s.computeLines(terms, 0, 0),
	}
	master.RecomputeTotals()

	saved, err := s.repo.UpsertMaster(ctx, master)
	if err != nil {
		return payroll.SubmissionResponse{}, err
	}

	return payroll.NewSubmissionResponse(saved), nil
}

// ========== HELPERS ==========

// collectTerms merges the request's employee sources: explicit terms,
// the directory, and the master template.
func (s *SubmissionServiceImpl) collectTerms(ctx context.Context, companyID string, req payroll.CreateSubmissionRequest) ([]payroll.CompensationTerms, error) {
	var terms []payroll.CompensationTerms
	seen := make(map[string]bool)

	add := func(t payroll.CompensationTerms) {
		if t.EmployeeID != "" {
			if seen[t.EmployeeID] {
				return
			}
			seen[t.EmployeeID] = true
		}
		terms = append(terms, t)
	}

	for i := range req.Employees {
		add(req.Employees[i].ToTerms())
	}

	if req.AllEmployees {
		employees, err := s.directory.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load employee directory: %w", err)
		}
		for _, emp := range employees {
			add(termsFromDirectory(emp))
		}
	}

	if req.SeedFromMaster {
		master, err := s.repo.GetMaster(ctx, companyID)
		if err != nil {
			return nil, err
		}
		for _, line := range master.Lines {
			add(line.Terms)
		}
	}

	return terms, nil
}

func (s *SubmissionServiceImpl) computeLines(terms []payroll.CompensationTerms, periodMonth, periodYear int) []payroll.SubmissionLine {
	lines := make([]payroll.SubmissionLine, 0, len(terms))
	for _, t := range terms {
		lines = append(lines, payroll.SubmissionLine{
			Terms:     t,
			Breakdown: s.calc.Compute(t, periodMonth, periodYear),
		})
	}
	return lines
}

// termsFromDirectory maps a directory snapshot onto compensation terms.
func termsFromDirectory(emp employee.Employee) payroll.CompensationTerms {
	terms := payroll.CompensationTerms{
		EmployeeID:      emp.ID,
		EmployeeName:    emp.FullName,
		HealthPremium:   emp.HealthPremium,
		Loan:            emp.Loan,
		Advance:         emp.Advance,
		Penalty:         emp.Penalty,
		OtherDeductions: emp.OtherDeductions,
	}

	if !emp.HireDate.IsZero() {
		hireDate := emp.HireDate
		terms.StartDate = &hireDate
	}

	switch emp.EmploymentType {
	case employee.EmploymentTypeContract:
		terms.EmployeeType = payroll.EmployeeTypeContract
		terms.UnitCount = emp.UnitCount
		terms.RatePerUnit = emp.RatePerUnit
	default:
		terms.EmployeeType = payroll.EmployeeTypePermanent
		terms.AnnualGross = emp.AnnualGross
		terms.BasicPct = emp.BasicPct
		terms.TransportPct = emp.TransportPct
		terms.HousingPct = emp.HousingPct
		terms.OthersPct = emp.OthersPct
	}

	return terms
}
