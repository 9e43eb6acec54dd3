package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var publisher ports.OrderEventPublisher
	if configs.KafkaHost != "" && configs.KafkaOrderChangedTopic != "" {
		publisher = kafka.NewOrderEventPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic, logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.PricingUoWFactory = FuncPricingUoWFactory(func() commands.PricingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAdvanceStageCommandHandler() commands.AdvanceStageCommandHandler {
	return commands.NewAdvanceStageCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmStageCommandHandler() commands.ConfirmStageCommandHandler {
	return commands.NewConfirmStageCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePublishRateCommandHandler() commands.PublishRateCommandHandler {
	return commands.NewPublishRateCommandHandler(c.rateUoWFactory())
}

func (c *CompositionRoot) CreateExpireRatesCommandHandler() commands.ExpireRatesCommandHandler {
	return commands.NewExpireRatesCommandHandler(c.rateUoWFactory())
}

func (c *CompositionRoot) CreateSetMarginRuleCommandHandler() commands.SetMarginRuleCommandHandler {
	var f commands.MarginUoWFactory = FuncMarginUoWFactory(func() commands.MarginUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetMarginRuleCommandHandler(f)
}

func (c *CompositionRoot) CreateSetLoyaltyScheduleCommandHandler() commands.SetLoyaltyScheduleCommandHandler {
	var f commands.LoyaltyUoWFactory = FuncLoyaltyUoWFactory(func() commands.LoyaltyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetLoyaltyScheduleCommandHandler(f)
}

func (c *CompositionRoot) CreateGetQuoteQueryHandler() queries.GetQuoteQueryHandler {
	// Advisory quoting reads outside any transaction; an untracked unit of
	// work hands out repositories on the base connection.
	uow := c.uowFactory.Create()
	return queries.NewGetQuoteQueryHandler(
		uow.RateQuoteRepository(),
		uow.MarginRuleRepository(),
		uow.LoyaltyScheduleRepository(),
		uow.OrderRepository(),
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) rateUoWFactory() commands.RateUoWFactory {
	return FuncRateUoWFactory(func() commands.RateUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRateUoWFactory func() commands.RateUoW

func (f FuncRateUoWFactory) Create() commands.RateUoW {
	return f()
}

type FuncMarginUoWFactory func() commands.MarginUoW

func (f FuncMarginUoWFactory) Create() commands.MarginUoW {
	return f()
}

type FuncLoyaltyUoWFactory func() commands.LoyaltyUoW

func (f FuncLoyaltyUoWFactory) Create() commands.LoyaltyUoW {
	return f()
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}
