package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/loyalty"
	"freight/internal/core/domain/model/margin"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/rate"
	"freight/internal/core/ports"
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

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextOrderSequence(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) ClientStats(ctx context.Context, clientID kernel.UUID) (loyalty.ClientStats, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(loyalty.ClientStats), args.Error(1)
}

type MockRateQuoteRepository struct{ mock.Mock }

func (m *MockRateQuoteRepository) Add(ctx context.Context, quote *rate.RateQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockRateQuoteRepository) Update(ctx context.Context, quote *rate.RateQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockRateQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*rate.RateQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rate.RateQuote), args.Error(1)
}

func (m *MockRateQuoteRepository) FindEffective(
	ctx context.Context,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	asOf time.Time,
) ([]*rate.RateQuote, error) {
	args := m.Called(ctx, origin, destination, serviceType, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rate.RateQuote), args.Error(1)
}

func (m *MockRateQuoteRepository) FindActiveForKey(
	ctx context.Context,
	agentID kernel.UUID,
	origin string,
	destination string,
	serviceType kernel.ServiceType,
	containerType string,
) ([]*rate.RateQuote, error) {
	args := m.Called(ctx, agentID, origin, destination, serviceType, containerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rate.RateQuote), args.Error(1)
}

func (m *MockRateQuoteRepository) FindExpired(ctx context.Context, asOf time.Time) ([]*rate.RateQuote, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rate.RateQuote), args.Error(1)
}

type MockMarginRuleRepository struct{ mock.Mock }

func (m *MockMarginRuleRepository) GetActive(
	ctx context.Context,
	agentID kernel.UUID,
	serviceType kernel.ServiceType,
) (*margin.Rule, error) {
	args := m.Called(ctx, agentID, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*margin.Rule), args.Error(1)
}

func (m *MockMarginRuleRepository) Upsert(ctx context.Context, rule *margin.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

type MockLoyaltyScheduleRepository struct{ mock.Mock }

func (m *MockLoyaltyScheduleRepository) GetSchedule(ctx context.Context) (loyalty.Schedule, error) {
	args := m.Called(ctx)
	return args.Get(0).(loyalty.Schedule), args.Error(1)
}

func (m *MockLoyaltyScheduleRepository) ReplaceSchedule(ctx context.Context, schedule loyalty.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
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

type MockPricingUoW struct {
	MockOrderUoW
}

func (m *MockPricingUoW) RateQuoteRepository() ports.RateQuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.RateQuoteRepository)
}

func (m *MockPricingUoW) MarginRuleRepository() ports.MarginRuleRepository {
	args := m.Called()
	return args.Get(0).(ports.MarginRuleRepository)
}

func (m *MockPricingUoW) LoyaltyScheduleRepository() ports.LoyaltyScheduleRepository {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyScheduleRepository)
}

type MockPricingUoWFactory struct{ mock.Mock }

func (m *MockPricingUoWFactory) Create() commands.PricingUoW {
	args := m.Called()
	return args.Get(0).(commands.PricingUoW)
}

type MockRateUoW struct{ mock.Mock }

func (m *MockRateUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRateUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRateUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRateUoW) RateQuoteRepository() ports.RateQuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.RateQuoteRepository)
}

type MockRateUoWFactory struct{ mock.Mock }

func (m *MockRateUoWFactory) Create() commands.RateUoW {
	args := m.Called()
	return args.Get(0).(commands.RateUoW)
}

type MockMarginUoW struct{ mock.Mock }

func (m *MockMarginUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarginUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarginUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarginUoW) MarginRuleRepository() ports.MarginRuleRepository {
	args := m.Called()
	return args.Get(0).(ports.MarginRuleRepository)
}

type MockMarginUoWFactory struct{ mock.Mock }

func (m *MockMarginUoWFactory) Create() commands.MarginUoW {
	args := m.Called()
	return args.Get(0).(commands.MarginUoW)
}

type MockLoyaltyUoW struct{ mock.Mock }

func (m *MockLoyaltyUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoyaltyUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoyaltyUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoyaltyUoW) LoyaltyScheduleRepository() ports.LoyaltyScheduleRepository {
	args := m.Called()
	return args.Get(0).(ports.LoyaltyScheduleRepository)
}

type MockLoyaltyUoWFactory struct{ mock.Mock }

func (m *MockLoyaltyUoWFactory) Create() commands.LoyaltyUoW {
	args := m.Called()
	return args.Get(0).(commands.LoyaltyUoW)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
