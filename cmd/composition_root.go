package cmd

import (
	"fmt"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/jwtauth"
	"dispatch/internal/adapters/out/mailer"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Each Create* method hands out
// a fully configured handler; the root itself owns the shared infrastructure
// (database, token provider, mail relay, access policy).
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	tokens     ports.TokenProvider
	notifier   ports.Notifier
	policy     *services.AccessPolicy
}

// NewCompositionRoot builds the root from the loaded configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	tokens, err := jwtauth.NewJWTTokenProvider(config.JWTSecret, config.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token provider: %w", err)
	}

	notifier, err := mailer.NewSMTPNotifier(mailer.Config{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("creating notifier: %w", err)
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		tokens:     tokens,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
	}, nil
}

func (c *CompositionRoot) CreateRegisterAccountCommandHandler() commands.RegisterAccountCommandHandler {
	return commands.NewRegisterAccountCommandHandler(c.accountUoWFactory(), c.tokens)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.accountUoWFactory(), c.tokens)
}

func (c *CompositionRoot) CreateForgotPasswordCommandHandler() commands.ForgotPasswordCommandHandler {
	return commands.NewForgotPasswordCommandHandler(c.accountUoWFactory(), c.notifier, c.config.ResetTokenTTL)
}

func (c *CompositionRoot) CreateResetPasswordCommandHandler() commands.ResetPasswordCommandHandler {
	return commands.NewResetPasswordCommandHandler(c.accountUoWFactory(), c.tokens)
}

func (c *CompositionRoot) CreateChangePasswordCommandHandler() commands.ChangePasswordCommandHandler {
	return commands.NewChangePasswordCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateCleanupResetTokensCommandHandler() commands.CleanupResetTokensCommandHandler {
	return commands.NewCleanupResetTokensCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() commands.CreateDeliveryCommandHandler {
	return commands.NewCreateDeliveryCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateDecideDeliveryCommandHandler() commands.DecideDeliveryCommandHandler {
	return commands.NewDecideDeliveryCommandHandler(c.deliveryUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateRemoveDriverCommandHandler() commands.RemoveDriverCommandHandler {
	return commands.NewRemoveDriverCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetDriversQueryHandler() queries.GetDriversQueryHandler {
	return queries.NewGetDriversQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetDriverQueryHandler() queries.GetDriverQueryHandler {
	return queries.NewGetDriverQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetProfileQueryHandler() queries.GetProfileQueryHandler {
	return queries.NewGetProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAccountByIDQueryHandler() queries.GetAccountByIDQueryHandler {
	return queries.NewGetAccountByIDQueryHandler(c.gormDB)
}

// CreateAuthGate builds the bearer-token middleware backed by the account
// read model.
func (c *CompositionRoot) CreateAuthGate() *httpin.AuthGate {
	resolver := c.CreateGetAccountByIDQueryHandler()
	return httpin.NewAuthGate(c.tokens, resolver)
}

// CreateServer builds the HTTP server with every route handler wired.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateRegisterAccountCommandHandler(),
		c.CreateLoginCommandHandler(),
		c.CreateForgotPasswordCommandHandler(),
		c.CreateResetPasswordCommandHandler(),
		c.CreateChangePasswordCommandHandler(),
		c.CreateCreateDeliveryCommandHandler(),
		c.CreateDecideDeliveryCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateRemoveDriverCommandHandler(),
		c.CreateGetDeliveriesQueryHandler(),
		c.CreateGetDeliveryQueryHandler(),
		c.CreateGetDriversQueryHandler(),
		c.CreateGetDriverQueryHandler(),
		c.CreateGetProfileQueryHandler(),
		c.CreateAuthGate(),
	)
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
