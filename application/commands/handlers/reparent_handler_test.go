package handlers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"orgchart-backend/application/commands"
	"orgchart-backend/application/ports"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/core/valueobjects"
	domainevents "orgchart-backend/domain/events"
	"orgchart-backend/domain/services"
	pkgerrors "orgchart-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu         sync.Mutex
	updateErr  error
	updated    []string
	listResult []*entities.Employee
	listErr    error
}

func (r *fakeRepo) List(ctx context.Context, organizationID string) ([]*entities.Employee, error) {
	return r.listResult, r.listErr
}

func (r *fakeRepo) Save(ctx context.Context, organizationID string, employee *entities.Employee) error {
	return nil
}

func (r *fakeRepo) UpdateManager(ctx context.Context, organizationID string, employee *entities.Employee) (*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.updated = append(r.updated, employee.ID().String())
	return employee, nil
}

func (r *fakeRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updated)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domainevents.DomainEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event domainevents.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) PublishBatch(ctx context.Context, evts []domainevents.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	return nil
}

func (p *fakePublisher) published() []domainevents.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domainevents.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (n *fakeNotifier) Info(message string) {
	n.record(ports.Notice{Level: ports.NoticeLevelInfo, Message: message})
}

func (n *fakeNotifier) Error(message string) {
	n.record(ports.Notice{Level: ports.NoticeLevelError, Message: message})
}

func (n *fakeNotifier) record(notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *fakeNotifier) Notices() []ports.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ports.Notice, len(n.notices))
	copy(out, n.notices)
	return out
}

func testID(t *testing.T, s string) valueobjects.EmployeeID {
	t.Helper()
	id, err := valueobjects.NewEmployeeID(s)
	require.NoError(t, err)
	return id
}

func testEmployee(t *testing.T, id, managerID string) *entities.Employee {
	t.Helper()
	var mgr valueobjects.EmployeeID
	if managerID != "" {
		mgr = testID(t, managerID)
	}
	e, err := entities.NewEmployee(testID(t, id), "Name "+id, "Engineer", "Engineering", mgr)
	require.NoError(t, err)
	return e
}

// ceo -> vp -> lead -> dev, plus a detached root
func setupHandler(t *testing.T, repo *fakeRepo) (*ReparentHandler, *aggregates.Hierarchy, *fakePublisher, *fakeNotifier) {
	t.Helper()
	hierarchy := aggregates.NewHierarchy("org-1")
	require.NoError(t, hierarchy.Replace([]*entities.Employee{
		testEmployee(t, "ceo", ""),
		testEmployee(t, "vp", "ceo"),
		testEmployee(t, "lead", "vp"),
		testEmployee(t, "dev", "lead"),
		testEmployee(t, "founder", ""),
	}))

	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	handler := NewReparentHandler(
		hierarchy,
		services.NewCycleGuard(hierarchy),
		repo,
		publisher,
		notifier,
		nil,
		zap.NewNop(),
	)
	return handler, hierarchy, publisher, notifier
}

func managerOf(t *testing.T, h *aggregates.Hierarchy, id string) string {
	t.Helper()
	mgr, ok := h.ManagerOf(testID(t, id))
	require.True(t, ok)
	return mgr.String()
}

func TestReparentHandler_Accepted(t *testing.T) {
	repo := &fakeRepo{}
	handler, hierarchy, publisher, _ := setupHandler(t, repo)

	err := handler.Handle(context.Background(), commands.ReparentEmployeeCommand{
		DraggedID: "dev",
		TargetID:  "vp",
	})
	require.NoError(t, err)

	// The local mutation is visible before persistence resolves.
	assert.Equal(t, "vp", managerOf(t, hierarchy, "dev"))

	handler.Wait()

	assert.Equal(t, 1, repo.updateCount())

	events := publisher.published()
	require.Len(t, events, 1)
	reassigned, ok := events[0].(domainevents.EmployeeReassigned)
	require.True(t, ok)
	assert.Equal(t, "dev", reassigned.EmployeeID.String())
	assert.Equal(t, "lead", reassigned.OldManagerID.String())
	assert.Equal(t, "vp", reassigned.NewManagerID.String())
}

func TestReparentHandler_Rejections(t *testing.T) {
	cases := []struct {
		name       string
		dragged    string
		target     string
		wantCode   string
		wantNotice bool
	}{
		{name: "missing target", dragged: "dev", target: "", wantCode: commands.RejectCodeNoTarget},
		{name: "unknown target", dragged: "dev", target: "ghost", wantCode: commands.RejectCodeNoTarget},
		{name: "self assignment", dragged: "dev", target: "dev", wantCode: commands.RejectCodeSelfAssignment},
		{name: "direct report as manager", dragged: "lead", target: "dev", wantCode: commands.RejectCodeWouldCreateCycle, wantNotice: true},
		{name: "transitive report as manager", dragged: "vp", target: "dev", wantCode: commands.RejectCodeWouldCreateCycle, wantNotice: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			handler, hierarchy, publisher, notifier := setupHandler(t, repo)
			before := hierarchy.Version()

			err := handler.Handle(context.Background(), commands.ReparentEmployeeCommand{
				DraggedID: tc.dragged,
				TargetID:  tc.target,
			})

			require.Error(t, err)
			appErr := pkgerrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tc.wantCode, appErr.Code)

			// A rejection has no side effects at all.
			handler.Wait()
			assert.Equal(t, before, hierarchy.Version())
			assert.Zero(t, repo.updateCount())
			assert.Empty(t, publisher.published())

			if tc.wantNotice {
				notices := notifier.Notices()
				require.Len(t, notices, 1)
				assert.Equal(t, ports.NoticeLevelInfo, notices[0].Level)
			} else {
				assert.Empty(t, notifier.Notices())
			}
		})
	}
}

func TestReparentHandler_UnknownDragged(t *testing.T) {
	repo := &fakeRepo{}
	handler, _, _, _ := setupHandler(t, repo)

	err := handler.Handle(context.Background(), commands.ReparentEmployeeCommand{
		DraggedID: "ghost",
		TargetID:  "vp",
	})
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestReparentHandler_RevertOnPersistFailure(t *testing.T) {
	repo := &fakeRepo{updateErr: errors.New("write throttled")}
	handler, hierarchy, publisher, notifier := setupHandler(t, repo)

	err := handler.Handle(context.Background(), commands.ReparentEmployeeCommand{
		DraggedID: "dev",
		TargetID:  "vp",
	})
	require.NoError(t, err)

	handler.Wait()

	// Exact revert to the pre-proposal manager.
	assert.Equal(t, "lead", managerOf(t, hierarchy, "dev"))

	notices := notifier.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, ports.NoticeLevelError, notices[0].Level)

	events := publisher.published()
	require.Len(t, events, 1)
	reverted, ok := events[0].(domainevents.ReassignmentReverted)
	require.True(t, ok)
	assert.Equal(t, "dev", reverted.EmployeeID.String())
	assert.Equal(t, "lead", reverted.RestoredManagerID.String())
	assert.Equal(t, "vp", reverted.FailedManagerID.String())
	assert.Contains(t, reverted.Reason, "write throttled")
}

func TestReparentHandler_RevertRestoresRoot(t *testing.T) {
	repo := &fakeRepo{updateErr: errors.New("write failed")}
	handler, hierarchy, _, _ := setupHandler(t, repo)

	err := handler.Handle(context.Background(), commands.ReparentEmployeeCommand{
		DraggedID: "founder",
		TargetID:  "ceo",
	})
	require.NoError(t, err)

	handler.Wait()

	// The employee was a root before the proposal and is a root again.
	e, err := hierarchy.Employee(testID(t, "founder"))
	require.NoError(t, err)
	assert.True(t, e.IsRoot())
}

func TestReparentHandler_SequentialProposalsSerialize(t *testing.T) {
	repo := &fakeRepo{}
	handler, hierarchy, _, _ := setupHandler(t, repo)
	ctx := context.Background()

	require.NoError(t, handler.Handle(ctx, commands.ReparentEmployeeCommand{
		DraggedID: "dev", TargetID: "vp",
	}))
	require.NoError(t, handler.Handle(ctx, commands.ReparentEmployeeCommand{
		DraggedID: "dev", TargetID: "ceo",
	}))

	handler.Wait()

	assert.Equal(t, "ceo", managerOf(t, hierarchy, "dev"))
	assert.Equal(t, 2, repo.updateCount())
}
