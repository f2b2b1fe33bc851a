package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// UpdateDeliveryStatusCommandHandler applies a driver's status report.
// Only the assigned driver passes the access policy.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.AccessPolicy
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
func NewUpdateDeliveryStatusCommandHandler(
	uowFactory DeliveryUoWFactory, policy *services.AccessPolicy,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the status update command.
// Moving to failed requires a reason; moving anywhere else clears any
// previously recorded reason.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	del, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = h.policy.CanPerform(cmd.Caller(), services.OperationUpdateDeliveryStatus, del); err != nil {
		return err
	}

	var reason *string
	if r := cmd.FailedReason(); r != "" {
		reason = &r
	}

	if err = del.UpdateStatus(cmd.Status(), reason); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, del); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
