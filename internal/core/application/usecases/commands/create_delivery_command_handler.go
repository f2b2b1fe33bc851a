package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CreateDeliveryCommandHandler handles the business logic for delivery creation.
// Only admins pass the access policy; the assigned driver must exist.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, policy)
//	cmd, _ := NewCreateDeliveryCommand(caller, "Dana Receiver", "456 Oak Avenue", "+15550101", "", driverID)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("delivery creation failed: %w", err)
//	}
//	// result.Delivery starts in Pending, awaiting the driver's decision
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	policy     *services.AccessPolicy
}

// CreateDeliveryResult carries the newly created delivery.
type CreateDeliveryResult struct {
	Delivery *delivery.Delivery
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory, policy *services.AccessPolicy) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the delivery creation command.
// The driver existence check and the insert share one transaction, so a
// concurrently removed driver cannot end up owning a fresh delivery.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context, cmd CreateDeliveryCommand,
) (CreateDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err := h.policy.CanPerform(cmd.Caller(), services.OperationCreateDelivery, nil); err != nil {
		return CreateDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.AccountRepository().Get(ctx, cmd.DriverID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return CreateDeliveryResult{}, errs.NewObjectNotFoundError("driverId", cmd.DriverID())
		}
		return CreateDeliveryResult{}, err
	}

	newDelivery, err := delivery.NewDelivery(
		kernel.NewUUID(),
		cmd.ReceiverName(),
		cmd.Address(),
		cmd.Phone(),
		cmd.Description(),
		cmd.DriverID(),
	)
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	return CreateDeliveryResult{Delivery: newDelivery}, nil
}
