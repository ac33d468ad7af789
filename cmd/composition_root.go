package cmd

import (
	"log/slog"

	"freight/internal/adapters/out/identity"
	"freight/internal/adapters/out/notify"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/vehiclerepo"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one UnitOfWork factory; each Handle call gets its own transaction.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.DispatchNotifier
	identity   ports.IdentityProvider
	vehicles   ports.VehicleRegistry
}

// NewCompositionRoot builds the object graph from configuration and the
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	adminIDs := make([]kernel.UUID, 0, len(config.AdminUserIDs))
	for _, raw := range config.AdminUserIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return CompositionRoot{}, err
		}
		adminIDs = append(adminIDs, id)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notify.NewSlogNotifier(logger),
		identity:   identity.NewStaticProviderWithAdmins(adminIDs),
		vehicles:   vehiclerepo.NewGormVehicleRegistry(gormDB),
	}, nil
}

// IdentityProvider exposes the role resolver for the HTTP adapter.
func (c *CompositionRoot) IdentityProvider() ports.IdentityProvider {
	return c.identity
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) bidUoWFactory() commands.BidUoWFactory {
	return FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderDraftCommandHandler() commands.UpdateOrderDraftCommandHandler {
	return commands.NewUpdateOrderDraftCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePostOrderCommandHandler() commands.PostOrderCommandHandler {
	return commands.NewPostOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreatePlaceBidCommandHandler() commands.PlaceBidCommandHandler {
	return commands.NewPlaceBidCommandHandler(c.bidUoWFactory(), c.vehicles, c.notifier)
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(c.dispatchUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	return commands.NewWithdrawBidCommandHandler(c.bidUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.dispatchUoWFactory(), c.identity, c.notifier)
}

func (c *CompositionRoot) CreateSubmitProofCommandHandler() commands.SubmitProofCommandHandler {
	return commands.NewSubmitProofCommandHandler(c.dispatchUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.dispatchUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBidsQueryHandler() queries.ListBidsQueryHandler {
	return queries.NewListBidsQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
