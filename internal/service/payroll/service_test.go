package payroll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/meridianhq/payroll-backend-go/internal/domain/employee"
	"github.com/meridianhq/payroll-backend-go/internal/domain/payroll"
	"github.com/meridianhq/payroll-backend-go/internal/domain/user"
	"github.com/meridianhq/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

// fakeSubmissionRepo is an in-memory store with the same compare-and-swap
// contract as the PostgreSQL implementation: status writes only land when
// the row still holds the expected source status.
type fakeSubmissionRepo struct {
	mu      sync.Mutex
	subs    map[string]payroll.PayrollSubmission
	masters map[string]payroll.PayrollSubmission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		subs:    make(map[string]payroll.PayrollSubmission),
		masters: make(map[string]payroll.PayrollSubmission),
	}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, sub payroll.PayrollSubmission) (payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	f.subs[sub.ID] = sub
	return sub, nil
}

func (f *fakeSubmissionRepo) GetByID(_ context.Context, id, companyID string) (payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok || sub.CompanyID != companyID {
		return payroll.PayrollSubmission{}, payroll.ErrSubmissionNotFound
	}
	return sub, nil
}

func (f *fakeSubmissionRepo) List(_ context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []payroll.PayrollSubmission
	for _, sub := range f.subs {
		if sub.CompanyID != companyID {
			continue
		}
		if filter.PeriodMonth != nil && sub.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && sub.PeriodYear != *filter.PeriodYear {
			continue
		}
		if filter.Status != nil && string(sub.Status) != *filter.Status {
			continue
		}
		result = append(result, sub)
	}
	return result, nil
}

func (f *fakeSubmissionRepo) UpdateDraft(_ context.Context, sub payroll.PayrollSubmission) (payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.subs[sub.ID]
	if !ok || stored.CompanyID != sub.CompanyID {
		return payroll.PayrollSubmission{}, payroll.ErrSubmissionNotFound
	}
	if stored.Status != payroll.StatusDraft {
		return payroll.PayrollSubmission{}, payroll.ErrStatusConflict
	}
	stored.Lines = sub.Lines
	stored.Totals = sub.Totals
	stored.UpdatedAt = time.Now().UTC()
	f.subs[sub.ID] = stored
	return stored, nil
}

func (f *fakeSubmissionRepo) UpdateStatus(_ context.Context, id, companyID string, from, to payroll.Status, stamp payroll.TransitionStamp) (payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok || sub.CompanyID != companyID {
		return payroll.PayrollSubmission{}, payroll.ErrSubmissionNotFound
	}
	if sub.Status != from {
		return payroll.PayrollSubmission{}, payroll.ErrStatusConflict
	}

	actor := stamp.Actor
	at := stamp.At
	switch to {
	case payroll.StatusSubmitted:
		sub.SubmittedBy, sub.SubmittedAt = &actor, &at
	case payroll.StatusApproved:
		sub.ApprovedBy, sub.ApprovedAt = &actor, &at
	case payroll.StatusRejected:
		sub.RejectedBy, sub.RejectedAt = &actor, &at
		sub.RejectionReason = stamp.Reason
	case payroll.StatusPaid:
		sub.PaidBy, sub.PaidAt = &actor, &at
	}

	sub.Status = to
	sub.UpdatedAt = time.Now().UTC()
	f.subs[id] = sub
	return sub, nil
}

func (f *fakeSubmissionRepo) Delete(_ context.Context, id, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok || sub.CompanyID != companyID {
		return payroll.ErrSubmissionNotFound
	}
	if sub.Status != payroll.StatusDraft {
		return payroll.ErrStatusConflict
	}
	delete(f.subs, id)
	return nil
}

func (f *fakeSubmissionRepo) GetMaster(_ context.Context, companyID string) (payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	master, ok := f.masters[companyID]
	if !ok {
		return payroll.PayrollSubmission{}, payroll.ErrMasterNotFound
	}
	return master, nil
}

func (f *fakeSubmissionRepo) UpsertMaster(_ context.Context, sub payroll.PayrollSubmission) (payroll.PayrollSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	f.masters[sub.CompanyID] = sub
	return sub, nil
}

type fakeDirectory struct {
	employees []employee.Employee
}

func (f *fakeDirectory) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID && emp.IsActive {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (f *fakeDirectory) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// ========== FIXTURES ==========

const testCompanyID = "company-1"

var testAuth = jwtauth.New("HS256", []byte("payroll-service-test-secret"), nil)

func contextFor(t *testing.T, role user.Role) context.Context {
	t.Helper()
	claims := map[string]interface{}{
		"user_id":    "user-" + string(role),
		"email":      string(role) + "@meridian.test",
		"company_id": testCompanyID,
		"role":       string(role),
		"type":       "access",
	}
	token, _, err := testAuth.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeSubmissionRepo, directory *fakeDirectory) payroll.Service {
	if directory == nil {
		directory = &fakeDirectory{}
	}
	return NewSubmissionService(repo, directory, NewCalculator())
}

func permanentInput(id string) payroll.CompensationTermsInput {
	annual := d("12000000")
	return payroll.CompensationTermsInput{
		EmployeeID:   id,
		EmployeeName: "Employee " + id,
		EmployeeType: "permanent",
		AnnualGross:  &annual,
		BasicPct:     d("15"),
		TransportPct: d("15"),
		HousingPct:   d("15"),
		OthersPct:    d("55"),
	}
}

func createDraft(t *testing.T, svc payroll.Service, inputs ...payroll.CompensationTermsInput) payroll.SubmissionResponse {
	t.Helper()
	created, err := svc.Create(contextFor(t, user.RoleHR), payroll.CreateSubmissionRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
		Employees:   inputs,
	})
	require.NoError(t, err)
	return created
}

// ========== DRAFT LIFECYCLE ==========

func TestSubmissionService_Create(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	created := createDraft(t, svc, permanentInput("emp-1"), permanentInput("emp-2"))

	assert.Equal(t, string(payroll.StatusDraft), created.Status)
	assert.Equal(t, 6, created.PeriodMonth)
	assert.Equal(t, testCompanyID, created.CompanyID)
	require.Len(t, created.Employees, 2)

	assertDecimalEqual(t, "2000000", created.Totals.Gross, "aggregate gross")
	assertDecimalEqual(t, "1537066.66", created.Totals.Net, "aggregate net")
	assert.True(t, created.Totals.Net.Equal(created.Totals.Gross.Sub(created.Totals.Deductions)))
}

func TestSubmissionService_Create_DeduplicatesEmployees(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	created := createDraft(t, svc, permanentInput("emp-1"), permanentInput("emp-1"))

	assert.Len(t, created.Employees, 1)
}

func TestSubmissionService_Create_RequiresPreparePermission(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	_, err := svc.Create(contextFor(t, user.RoleFinance), payroll.CreateSubmissionRequest{
		PeriodMonth: 6,
		PeriodYear:  2025,
	})

	var permErr *payroll.PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, user.PermissionPayrollPrepare, permErr.Required)
}

func TestSubmissionService_Create_AllEmployeesFromDirectory(t *testing.T) {
	t.Parallel()
	directory := &fakeDirectory{employees: []employee.Employee{
		{
			ID: "emp-1", CompanyID: testCompanyID, FullName: "Ada Obi", IsActive: true,
			EmploymentType: employee.EmploymentTypePermanent,
			AnnualGross:    d("12000000"),
			BasicPct:       d("15"), TransportPct: d("15"), HousingPct: d("15"), OthersPct: d("55"),
			HireDate: time.Date(2023, time.January, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "emp-2", CompanyID: testCompanyID, FullName: "Bola Ade", IsActive: true,
			EmploymentType: employee.EmploymentTypeContract,
			UnitCount:      10, RatePerUnit: d("5000"),
			HireDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{ID: "emp-3", CompanyID: testCompanyID, FullName: "Gone", IsActive: false},
		{ID: "emp-4", CompanyID: "other-company", FullName: "Elsewhere", IsActive: true},
	}}
	svc := newTestService(newFakeSubmissionRepo(), directory)

	created, err := svc.Create(contextFor(t, user.RoleHR), payroll.CreateSubmissionRequest{
		PeriodMonth:  6,
		PeriodYear:   2025,
		AllEmployees: true,
	})
	require.NoError(t, err)

	require.Len(t, created.Employees, 2)
	assertDecimalEqual(t, "1050000", created.Totals.Gross, "permanent plus contract gross")
}

func TestSubmissionService_Create_SeedFromMaster(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	_, err := svc.UpsertMaster(hr, payroll.UpsertMasterRequest{
		Employees: []payroll.CompensationTermsInput{permanentInput("emp-1"), permanentInput("emp-2")},
	})
	require.NoError(t, err)

	created, err := svc.Create(hr, payroll.CreateSubmissionRequest{
		PeriodMonth:    7,
		PeriodYear:     2025,
		Employees:      []payroll.CompensationTermsInput{permanentInput("emp-1")},
		SeedFromMaster: true,
	})
	require.NoError(t, err)

	// emp-1 appears once: the explicit line wins over the master's.
	assert.Len(t, created.Employees, 2)
}

func TestSubmissionService_Create_SeedFromMaster_NoMaster(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	_, err := svc.Create(contextFor(t, user.RoleHR), payroll.CreateSubmissionRequest{
		PeriodMonth:    7,
		PeriodYear:     2025,
		SeedFromMaster: true,
	})

	assert.ErrorIs(t, err, payroll.ErrMasterNotFound)
}

func TestSubmissionService_Get_OtherCompanyIsNotFound(t *testing.T) {
	t.Parallel()
	repo := newFakeSubmissionRepo()
	svc := newTestService(repo, nil)

	created := createDraft(t, svc, permanentInput("emp-1"))

	repo.mu.Lock()
	sub := repo.subs[created.ID]
	sub.CompanyID = "other-company"
	repo.subs[created.ID] = sub
	repo.mu.Unlock()

	_, err := svc.Get(contextFor(t, user.RoleHR), created.ID)
	assert.ErrorIs(t, err, payroll.ErrSubmissionNotFound)
}

func TestSubmissionService_List_Filters(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Create(hr, payroll.CreateSubmissionRequest{
		PeriodMonth: 7,
		PeriodYear:  2025,
		Employees:   []payroll.CompensationTermsInput{permanentInput("emp-1")},
	})
	require.NoError(t, err)

	month := 6
	result, err := svc.List(hr, payroll.ListFilter{PeriodMonth: &month})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, 6, result.Data[0].PeriodMonth)

	all, err := svc.List(hr, payroll.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCount)
}

func TestSubmissionService_Update_RecomputesBreakdowns(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	created := createDraft(t, svc, permanentInput("emp-1"))

	replacement := []payroll.CompensationTermsInput{permanentInput("emp-1"), permanentInput("emp-2")}
	updated, err := svc.Update(contextFor(t, user.RoleHR), payroll.UpdateSubmissionRequest{
		ID:        created.ID,
		Employees: &replacement,
	})
	require.NoError(t, err)

	assert.Len(t, updated.Employees, 2)
	assertDecimalEqual(t, "2000000", updated.Totals.Gross, "recomputed gross")
}

func TestSubmissionService_Update_NonDraftFails(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	created := createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Submit(hr, created.ID)
	require.NoError(t, err)

	terms := []payroll.CompensationTermsInput{permanentInput("emp-2")}
	_, err = svc.Update(hr, payroll.UpdateSubmissionRequest{ID: created.ID, Employees: &terms})

	var transitionErr *payroll.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, payroll.StatusSubmitted, transitionErr.Current)
}

func TestSubmissionService_Delete_DraftOnly(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	draft := createDraft(t, svc, permanentInput("emp-1"))
	require.NoError(t, svc.Delete(hr, draft.ID))
	_, err := svc.Get(hr, draft.ID)
	assert.ErrorIs(t, err, payroll.ErrSubmissionNotFound)

	submitted := createDraft(t, svc, permanentInput("emp-2"))
	_, err = svc.Submit(hr, submitted.ID)
	require.NoError(t, err)

	err = svc.Delete(hr, submitted.ID)
	var transitionErr *payroll.InvalidTransitionError
	assert.True(t, errors.As(err, &transitionErr))
}

// ========== WORKFLOW ==========

func TestSubmissionService_FullLifecycle(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)
	finance := contextFor(t, user.RoleFinance)

	created := createDraft(t, svc, permanentInput("emp-1"))

	submitted, err := svc.Submit(hr, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusSubmitted), submitted.Status)
	require.NotNil(t, submitted.SubmittedBy)
	assert.Equal(t, "user-hr", *submitted.SubmittedBy)
	assert.NotNil(t, submitted.SubmittedAt)

	approved, err := svc.Approve(finance, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "user-finance", *approved.ApprovedBy)

	paid, err := svc.MarkPaid(finance, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusPaid), paid.Status)
	assert.NotNil(t, paid.PaidBy)
	assert.NotNil(t, paid.PaidAt)

	// Earlier stamps survive later transitions.
	assert.NotNil(t, paid.SubmittedBy)
	assert.NotNil(t, paid.ApprovedBy)
}

func TestSubmissionService_Submit_EmptyFails(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	created := createDraft(t, svc)
	_, err := svc.Submit(contextFor(t, user.RoleHR), created.ID)

	assert.ErrorIs(t, err, payroll.ErrEmptySubmission)
}

func TestSubmissionService_Approve_DraftFails(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	created := createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Approve(contextFor(t, user.RoleFinance), created.ID)

	var transitionErr *payroll.InvalidTransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, payroll.StatusDraft, transitionErr.Current)
	assert.Equal(t, payroll.ActionApprove, transitionErr.Action)
}

func TestSubmissionService_Approve_RequiresFinanceCapability(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	created := createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Submit(hr, created.ID)
	require.NoError(t, err)

	_, err = svc.Approve(hr, created.ID)
	var permErr *payroll.PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, user.PermissionPayrollApprove, permErr.Required)

	// Executive holds every capability.
	_, err = svc.Approve(contextFor(t, user.RoleExecutive), created.ID)
	assert.NoError(t, err)
}

func TestSubmissionService_Reject_RequiresReason(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	created := createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Submit(hr, created.ID)
	require.NoError(t, err)

	_, err = svc.Reject(contextFor(t, user.RoleFinance), created.ID, payroll.RejectSubmissionRequest{})
	var errs validator.ValidationErrors
	assert.True(t, errors.As(err, &errs))
}

func TestSubmissionService_RejectThenReopen(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)
	finance := contextFor(t, user.RoleFinance)

	created := createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Submit(hr, created.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(finance, created.ID, payroll.RejectSubmissionRequest{
		Reason: "pension figures look wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "pension figures look wrong", *rejected.RejectionReason)

	// Finance cannot reopen; that is HR's correction path.
	_, err = svc.Reopen(finance, created.ID)
	var permErr *payroll.PermissionError
	require.True(t, errors.As(err, &permErr))

	reopened, err := svc.Reopen(hr, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusDraft), reopened.Status)

	// The reopened draft is editable and resubmittable.
	terms := []payroll.CompensationTermsInput{permanentInput("emp-1"), permanentInput("emp-2")}
	_, err = svc.Update(hr, payroll.UpdateSubmissionRequest{ID: created.ID, Employees: &terms})
	require.NoError(t, err)
	_, err = svc.Submit(hr, created.ID)
	assert.NoError(t, err)
}

func TestSubmissionService_ConcurrentApproveReject_OneWinner(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)
	finance := contextFor(t, user.RoleFinance)

	created := createDraft(t, svc, permanentInput("emp-1"))
	_, err := svc.Submit(hr, created.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = svc.Approve(finance, created.ID)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = svc.Reject(finance, created.ID, payroll.RejectSubmissionRequest{Reason: "racing"})
	}()
	wg.Wait()

	winners := 0
	for _, res := range results {
		if res == nil {
			winners++
			continue
		}
		var transitionErr *payroll.InvalidTransitionError
		assert.True(t, errors.As(res, &transitionErr), "loser must see an invalid transition, got %v", res)
	}
	assert.Equal(t, 1, winners, "exactly one of the racing transitions may win")

	final, err := svc.Get(hr, created.ID)
	require.NoError(t, err)
	assert.Contains(t, []string{string(payroll.StatusApproved), string(payroll.StatusRejected)}, final.Status)
}

// ========== MASTER TEMPLATE ==========

func TestSubmissionService_MasterTemplate(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)
	hr := contextFor(t, user.RoleHR)

	_, err := svc.GetMaster(hr)
	assert.ErrorIs(t, err, payroll.ErrMasterNotFound)

	saved, err := svc.UpsertMaster(hr, payroll.UpsertMasterRequest{
		Employees: []payroll.CompensationTermsInput{permanentInput("emp-1")},
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusMaster), saved.Status)
	assert.Zero(t, saved.PeriodMonth)
	assert.Len(t, saved.Employees, 1)

	// A second upsert replaces, never duplicates.
	replaced, err := svc.UpsertMaster(hr, payroll.UpsertMasterRequest{
		Employees: []payroll.CompensationTermsInput{permanentInput("emp-1"), permanentInput("emp-2")},
	})
	require.NoError(t, err)
	assert.Len(t, replaced.Employees, 2)

	fetched, err := svc.GetMaster(hr)
	require.NoError(t, err)
	assert.Len(t, fetched.Employees, 2)
}

func TestSubmissionService_UpsertMaster_RequiresManagePermission(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	_, err := svc.UpsertMaster(contextFor(t, user.RoleFinance), payroll.UpsertMasterRequest{
		Employees: []payroll.CompensationTermsInput{permanentInput("emp-1")},
	})

	var permErr *payroll.PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, user.PermissionPayrollManageMaster, permErr.Required)
}

// ========== ACTOR EXTRACTION ==========

func TestSubmissionService_MissingClaims(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	_, err := svc.Get(context.Background(), "any-id")
	assert.Error(t, err)
}

func TestSubmissionService_ClaimsWithoutCompany(t *testing.T) {
	t.Parallel()
	svc := newTestService(newFakeSubmissionRepo(), nil)

	token, _, err := testAuth.Encode(map[string]interface{}{
		"user_id": "user-1",
		"role":    "hr",
	})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err = svc.Get(ctx, "any-id")
	assert.ErrorIs(t, err, user.ErrInvalidActor)
}
