package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// DecideDeliveryCommandHandler applies a driver's accept or reject decision.
// Only the assigned driver passes the access policy; admins cannot decide on
// a driver's behalf.
type DecideDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     *services.AccessPolicy
}

// NewDecideDeliveryCommandHandler creates a handler for accept/reject decisions.
func NewDecideDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory, policy *services.AccessPolicy,
) DecideDeliveryCommandHandler {
	return DecideDeliveryCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the decision command.
// Accept moves the delivery from pending to picked-up. Reject unassigns it
// and returns it to the pending pool.
func (h *DecideDeliveryCommandHandler) Handle(ctx context.Context, cmd DecideDeliveryCommand) error {
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

	if err = h.policy.CanPerform(cmd.Caller(), services.OperationDecideDelivery, del); err != nil {
		return err
	}

	if err = del.Decide(cmd.Action()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, del); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
