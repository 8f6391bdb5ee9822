package app

import (
	"context"
	"fmt"

	"github.com/example/dispatch/internal/ports/secondary"
)

// Ensure mocks implement their interfaces
var (
	_ secondary.TaskRepository      = (*mockTaskRepo)(nil)
	_ secondary.OrderRepository     = (*mockOrderRepo)(nil)
	_ secondary.ProductRepository   = (*mockProductRepo)(nil)
	_ secondary.AgentRepository     = (*mockAgentRepo)(nil)
	_ secondary.WarehouseRepository = (*mockWarehouseRepo)(nil)
	_ secondary.TaskEventRepository = (*mockEventRepo)(nil)
	_ secondary.Broadcaster         = (*mockBroadcaster)(nil)
	_ secondary.CoordinateResolver  = (*mockResolver)(nil)
)

// mockTaskRepo implements secondary.TaskRepository in memory.
type mockTaskRepo struct {
	tasks  map[string]*secondary.TaskRecord
	nextID int

	createErr error
	// assignDenied makes every conditional write report a lost race.
	assignDenied bool

	// afterCreate and afterAssign run after each successful write.
	afterCreate func()
	afterAssign func()
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*secondary.TaskRecord)}
}

func (m *mockTaskRepo) add(t *secondary.TaskRecord) {
	if t.Status == "" {
		t.Status = "pending"
	}
	if t.CreatedAt == "" {
		t.CreatedAt = "2026-08-01T10:00:00Z"
	}
	m.tasks[t.ID] = t
}

func (m *mockTaskRepo) Create(ctx context.Context, task *secondary.TaskRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, t := range m.tasks {
		if t.SourceOrderID == task.SourceOrderID && t.ProductID == task.ProductID &&
			t.Type == task.Type && t.Status != "cancelled" && t.SourceOrderID != "" {
			return fmt.Errorf("task for order %s product %s: %w", task.SourceOrderID, task.ProductID, secondary.ErrDuplicateTask)
		}
	}
	copied := *task
	copied.Status = "pending"
	if copied.CreatedAt == "" {
		copied.CreatedAt = "2026-08-01T10:00:00Z"
	}
	m.tasks[task.ID] = &copied
	if m.afterCreate != nil {
		m.afterCreate()
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, companyID, id string) (*secondary.TaskRecord, error) {
	t, ok := m.tasks[id]
	if !ok || t.CompanyID != companyID {
		return nil, fmt.Errorf("task %s: %w", id, secondary.ErrNotFound)
	}
	copied := *t
	return &copied, nil
}

func (m *mockTaskRepo) GetByIDs(ctx context.Context, companyID, warehouseID string, ids []string) ([]*secondary.TaskRecord, error) {
	var out []*secondary.TaskRecord
	for _, id := range ids {
		if t, ok := m.tasks[id]; ok && t.CompanyID == companyID && t.WarehouseID == warehouseID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	var out []*secondary.TaskRecord
	for _, t := range m.tasks {
		if t.CompanyID != filters.CompanyID {
			continue
		}
		if !filters.IncludeDeleted && t.Deleted {
			continue
		}
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockTaskRepo) HasLiveTask(ctx context.Context, companyID, sourceOrderID, productID, taskType string) (bool, error) {
	for _, t := range m.tasks {
		if t.CompanyID == companyID && t.SourceOrderID == sourceOrderID &&
			t.ProductID == productID && t.Type == taskType && t.Status != "cancelled" {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTaskRepo) AssignIfPending(ctx context.Context, id, assigneeID, assigneeKind, assignedAt string) (bool, error) {
	if m.assignDenied {
		return false, nil
	}
	t, ok := m.tasks[id]
	if !ok || t.Status != "pending" || t.Deleted {
		return false, nil
	}
	t.Status = "assigned"
	t.AssigneeID = assigneeID
	t.AssigneeKind = assigneeKind
	t.AssignedAt = assignedAt
	if m.afterAssign != nil {
		m.afterAssign()
	}
	return true, nil
}

func (m *mockTaskRepo) StartIfAssigned(ctx context.Context, id, startedAt string) (bool, error) {
	t, ok := m.tasks[id]
	if !ok || t.Status != "assigned" || t.Deleted {
		return false, nil
	}
	t.Status = "in_progress"
	t.StartedAt = startedAt
	return true, nil
}

func (m *mockTaskRepo) CompleteIfActive(ctx context.Context, id, notes, completedAt string) (bool, error) {
	t, ok := m.tasks[id]
	if !ok || (t.Status != "assigned" && t.Status != "in_progress") || t.Deleted {
		return false, nil
	}
	t.Status = "completed"
	t.Notes = notes
	t.CompletedAt = completedAt
	return true, nil
}

func (m *mockTaskRepo) CancelIfActive(ctx context.Context, id, reason string) (bool, error) {
	t, ok := m.tasks[id]
	if !ok || t.Status == "completed" || t.Status == "cancelled" || t.Deleted {
		return false, nil
	}
	t.Status = "cancelled"
	t.CancelReason = reason
	return true, nil
}

func (m *mockTaskRepo) SoftDelete(ctx context.Context, companyID, id string) error {
	t, ok := m.tasks[id]
	if !ok || t.CompanyID != companyID {
		return fmt.Errorf("task %s: %w", id, secondary.ErrNotFound)
	}
	t.Deleted = true
	return nil
}

func (m *mockTaskRepo) OpenCountByAgent(ctx context.Context, companyID, warehouseID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range m.tasks {
		if t.CompanyID == companyID && t.WarehouseID == warehouseID && !t.Deleted &&
			(t.Status == "assigned" || t.Status == "in_progress") && t.AssigneeID != "" {
			counts[t.AssigneeID]++
		}
	}
	return counts, nil
}

func (m *mockTaskRepo) GetNextID(ctx context.Context) (string, error) {
	for {
		m.nextID++
		id := fmt.Sprintf("TASK-%04d", m.nextID)
		if _, taken := m.tasks[id]; !taken {
			return id, nil
		}
	}
}

// mockOrderRepo implements secondary.OrderRepository in memory.
type mockOrderRepo struct {
	orders map[string]*secondary.OrderRecord
	lines  map[string][]*secondary.OrderLineRecord
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders: make(map[string]*secondary.OrderRecord),
		lines:  make(map[string][]*secondary.OrderLineRecord),
	}
}

func (m *mockOrderRepo) addOrder(o *secondary.OrderRecord, lines ...*secondary.OrderLineRecord) {
	m.orders[o.ID] = o
	m.lines[o.ID] = lines
}

func (m *mockOrderRepo) GetByID(ctx context.Context, companyID, id string) (*secondary.OrderRecord, error) {
	o, ok := m.orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, fmt.Errorf("order %s: %w", id, secondary.ErrNotFound)
	}
	return o, nil
}

func (m *mockOrderRepo) ListLines(ctx context.Context, orderID string) ([]*secondary.OrderLineRecord, error) {
	return m.lines[orderID], nil
}

func (m *mockOrderRepo) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	var out []*secondary.OrderRecord
	for _, o := range m.orders {
		if o.CompanyID == filters.CompanyID {
			out = append(out, o)
		}
	}
	return out, nil
}

// mockProductRepo implements secondary.ProductRepository in memory.
type mockProductRepo struct {
	products map[string]*secondary.ProductRecord
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*secondary.ProductRecord)}
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*secondary.ProductRecord, error) {
	out := make(map[string]*secondary.ProductRecord)
	for _, id := range ids {
		if p, ok := m.products[id]; ok && p.CompanyID == companyID {
			out[id] = p
		}
	}
	return out, nil
}

// mockAgentRepo implements secondary.AgentRepository in memory.
type mockAgentRepo struct {
	agents map[string]*secondary.AgentRecord
}

func newMockAgentRepo() *mockAgentRepo {
	return &mockAgentRepo{agents: make(map[string]*secondary.AgentRecord)}
}

func (m *mockAgentRepo) Create(ctx context.Context, agent *secondary.AgentRecord) error {
	m.agents[agent.ID] = agent
	return nil
}

func (m *mockAgentRepo) GetByID(ctx context.Context, companyID, id string) (*secondary.AgentRecord, error) {
	a, ok := m.agents[id]
	if !ok || a.CompanyID != companyID {
		return nil, fmt.Errorf("agent %s: %w", id, secondary.ErrNotFound)
	}
	return a, nil
}

func (m *mockAgentRepo) List(ctx context.Context, filters secondary.AgentFilters) ([]*secondary.AgentRecord, error) {
	var out []*secondary.AgentRecord
	for _, a := range m.agents {
		if a.CompanyID != filters.CompanyID {
			continue
		}
		if filters.WarehouseID != "" && a.WarehouseID != filters.WarehouseID {
			continue
		}
		if filters.Kind != "" && a.Kind != filters.Kind {
			continue
		}
		if filters.AvailableOnly && !a.Available {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAgentRepo) SetAvailability(ctx context.Context, companyID, id string, available bool) error {
	a, ok := m.agents[id]
	if !ok || a.CompanyID != companyID {
		return fmt.Errorf("agent %s: %w", id, secondary.ErrNotFound)
	}
	a.Available = available
	return nil
}

func (m *mockAgentRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("AGENT-%03d", len(m.agents)+1), nil
}

// mockWarehouseRepo implements secondary.WarehouseRepository in memory.
type mockWarehouseRepo struct {
	warehouses map[string]string // id -> company
}

func newMockWarehouseRepo(ids ...string) *mockWarehouseRepo {
	m := &mockWarehouseRepo{warehouses: make(map[string]string)}
	for _, id := range ids {
		m.warehouses[id] = "COMP-001"
	}
	return m
}

func (m *mockWarehouseRepo) Exists(ctx context.Context, companyID, warehouseID string) (bool, error) {
	return m.warehouses[warehouseID] == companyID, nil
}

func (m *mockWarehouseRepo) GetByID(ctx context.Context, companyID, id string) (*secondary.WarehouseRecord, error) {
	if m.warehouses[id] != companyID {
		return nil, fmt.Errorf("warehouse %s: %w", id, secondary.ErrNotFound)
	}
	return &secondary.WarehouseRecord{ID: id, CompanyID: companyID}, nil
}

// mockEventRepo implements secondary.TaskEventRepository in memory.
type mockEventRepo struct {
	events []*secondary.TaskEventRecord
}

func (m *mockEventRepo) Create(ctx context.Context, event *secondary.TaskEventRecord) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepo) List(ctx context.Context, filters secondary.TaskEventFilters) ([]*secondary.TaskEventRecord, error) {
	var out []*secondary.TaskEventRecord
	for _, e := range m.events {
		if e.CompanyID != filters.CompanyID {
			continue
		}
		if filters.TaskID != "" && e.TaskID != filters.TaskID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// mockBroadcaster records transitions for assertions.
type mockBroadcaster struct {
	transitions []secondary.TaskTransition
}

func (m *mockBroadcaster) TaskTransitioned(ctx context.Context, transition secondary.TaskTransition) error {
	m.transitions = append(m.transitions, transition)
	return nil
}

func (m *mockBroadcaster) hasTransition(taskID, from, to string) bool {
	for _, t := range m.transitions {
		if t.TaskID == taskID && t.FromStatus == from && t.ToStatus == to {
			return true
		}
	}
	return false
}

// mockResolver implements secondary.CoordinateResolver over fixed maps.
type mockResolver struct {
	byID   map[string]secondary.Coordinate
	byCode map[string]secondary.Coordinate
}

func newMockResolver() *mockResolver {
	return &mockResolver{
		byID:   make(map[string]secondary.Coordinate),
		byCode: make(map[string]secondary.Coordinate),
	}
}

func (m *mockResolver) ResolveBin(ctx context.Context, companyID, warehouseID, binID string) (secondary.Coordinate, bool, error) {
	c, ok := m.byID[binID]
	return c, ok, nil
}

func (m *mockResolver) ResolveCode(ctx context.Context, companyID, warehouseID, code string) (secondary.Coordinate, bool, error) {
	c, ok := m.byCode[code]
	return c, ok, nil
}

func (m *mockResolver) Invalidate(warehouseID string) {}
