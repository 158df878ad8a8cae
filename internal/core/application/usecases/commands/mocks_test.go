package commands_test

import (
	"context"
	"sync"
	"testing"

	"mediquick/internal/core/application/usecases/commands"
	"mediquick/internal/core/domain/model/inventory"
	"mediquick/internal/core/domain/model/kernel"
	"mediquick/internal/core/domain/model/order"
	"mediquick/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ActiveOrderIDForAgent(ctx context.Context, agentID string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, productID kernel.UUID) (*inventory.Record, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) GetForUpdate(ctx context.Context, productIDs []kernel.UUID) ([]*inventory.Record, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) GetAll(ctx context.Context) ([]*inventory.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Record), args.Error(1)
}

func (m *MockInventoryRepository) GetAllLowStock(ctx context.Context) ([]*inventory.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Record), args.Error(1)
}

// MockUoW satisfies every unit-of-work shape the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

// RecordingPublisher captures published events for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

type PublishedEvent struct {
	Type    string
	Payload any
}

func (p *RecordingPublisher) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{Type: eventType, Payload: payload})
}

func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := make([]PublishedEvent, len(p.events))
	copy(events, p.events)
	return events
}

func mustItem(t *testing.T, productID kernel.UUID, name string, quantity, unitPrice int) order.Item {
	t.Helper()
	item, err := order.NewItem(productID, name, quantity, unitPrice)
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "Ravi Sharma", items,
		"12 Hill Road, Bandra", "Ring the bell twice", "card", "paid",
	)
	require.NoError(t, err)
	return o
}

func newProcessingOrder(t *testing.T, agentID string, items ...order.Item) *order.Order {
	t.Helper()
	o := newPendingOrder(t, items...)
	require.NoError(t, o.Approve())
	if agentID != "" {
		require.NoError(t, o.AssignAgent(agentID))
	}
	return o
}

func newInTransitOrder(t *testing.T, agentID string, items ...order.Item) *order.Order {
	t.Helper()
	o := newProcessingOrder(t, agentID, items...)
	require.NoError(t, o.Dispatch())
	return o
}

func mustRecord(t *testing.T, productID kernel.UUID, name string, stock, threshold int) *inventory.Record {
	t.Helper()
	record, err := inventory.NewRecord(productID, name, stock, threshold)
	require.NoError(t, err)
	return record
}
