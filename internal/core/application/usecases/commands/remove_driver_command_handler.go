package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// RemoveDriverCommandHandler removes a driver account.
// Removal is refused while the driver owns deliveries that are still in
// flight, so no in-progress delivery loses its driver.
type RemoveDriverCommandHandler struct {
	uowFactory UoWFactory
	policy     *services.AccessPolicy
}

// NewRemoveDriverCommandHandler creates a handler for driver removal.
func NewRemoveDriverCommandHandler(uowFactory UoWFactory, policy *services.AccessPolicy) RemoveDriverCommandHandler {
	return RemoveDriverCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the removal command.
// The active-delivery check and the delete share one transaction, so a
// delivery accepted concurrently blocks the removal rather than being
// orphaned by it.
func (h *RemoveDriverCommandHandler) Handle(ctx context.Context, cmd RemoveDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanPerform(cmd.Caller(), services.OperationRemoveDriver, nil); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accountRepo := uow.AccountRepository()

	driver, err := accountRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewObjectNotFoundError("driverId", cmd.DriverID())
		}
		return err
	}

	hasActive, err := uow.DeliveryRepository().HasActiveByDriver(ctx, driver.ID())
	if err != nil {
		return err
	}
	if hasActive {
		return ErrDriverHasActiveDeliveries
	}

	if err = accountRepo.Delete(ctx, driver.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
