package cmd

import (
	"log/slog"

	apihttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/authclient"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/escalation"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	registry          *realtime.InMemoryRegistry
	router            *realtime.Router
	escalationManager *escalation.Manager
	authenticator     *authclient.Client
}

// noopTracker satisfies the repository's tracking hook for repositories used
// outside a unit of work (escalation re-reads, startup sweeps).
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := realtime.NewInMemoryRegistry()
	router := realtime.NewRouter(registry, services.NewAudienceResolver(), logger)

	source := orderrepo.NewGormOrderRepository(gormDB, noopTracker{})
	escalationManager := escalation.NewManager(source, router, config.EscalationTimeout, logger)
	router.BindEscalation(escalationManager)

	return &CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:            logger,
		registry:          registry,
		router:            router,
		escalationManager: escalationManager,
		authenticator:     authclient.NewClient(config.AuthServiceURL, logger),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.router)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.router)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.router)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.router)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.orderUoWFactory(), c.router)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.router)
}

func (c *CompositionRoot) CreateGetClaimableOrdersQueryHandler() queries.GetClaimableOrdersQueryHandler {
	return queries.NewGetClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetClaimableOrdersQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.router,
	)
}

func (c *CompositionRoot) CreateWSHandler() *ws.Handler {
	return ws.NewHandler(c.registry, c.authenticator, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.escalationManager, c.logger)
}

func (c *CompositionRoot) EscalationManager() *escalation.Manager {
	return c.escalationManager
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
