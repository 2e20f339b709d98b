package commands_test

import (
	"context"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
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

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedStatus order.Status) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Claim(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockProofStore struct{ mock.Mock }

func (m *MockProofStore) Save(ctx context.Context, proof services.DeliveryProof) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

func (m *MockProofStore) Get(ctx context.Context, orderID kernel.UUID) (services.DeliveryProof, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(services.DeliveryProof), args.Error(1)
}

func (m *MockProofStore) IncrementAttempts(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockProofStore) Delete(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockProofStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ MockOrderUoW }

func (m *MockUoW) ProofStore() ports.ProofStore {
	args := m.Called()
	return args.Get(0).(ports.ProofStore)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTransitionRecorder struct{ mock.Mock }

func (m *MockTransitionRecorder) ObserveTransition(from, to order.Status, outcome string) {
	m.Called(from, to, outcome)
}

// capturingPublisher collects published notifications and signals on a
// channel so tests can wait for the background publish to finish.
type capturingPublisher struct {
	statusChanges chan order.StatusChangedEvent
	codes         chan string
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{
		statusChanges: make(chan order.StatusChangedEvent, 8),
		codes:         make(chan string, 1),
	}
}

func (p *capturingPublisher) PublishStatusChanged(_ context.Context, event order.StatusChangedEvent) error {
	p.statusChanges <- event
	return nil
}

func (p *capturingPublisher) PublishDeliveryCodeIssued(_ context.Context, _ kernel.UUID, _, code string) error {
	p.codes <- code
	return nil
}
