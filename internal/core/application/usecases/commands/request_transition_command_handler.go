package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// Transition outcome labels recorded per attempt.
const (
	OutcomeApplied        = "applied"
	OutcomeInvalid        = "invalid_transition"
	OutcomeUnauthorized   = "unauthorized"
	OutcomeNotCancellable = "not_cancellable"
	OutcomeConflict       = "conflict"
	OutcomeProofInvalid   = "proof_invalid"
	OutcomeError          = "error"
)

// publishTimeout bounds the background notification publish so a slow broker
// cannot pile up goroutines forever.
const publishTimeout = 10 * time.Second

// TransitionRecorder observes the outcome of every transition attempt.
type TransitionRecorder interface {
	ObserveTransition(from, to order.Status, outcome string)
}

// RequestTransitionCommandHandler applies status transitions requested by
// customers, vendors, couriers and admins. This is the single entry point
// for moving an order through its lifecycle after creation.
//
// The handler loads the aggregate, lets the domain model validate the edge
// and the actor, then persists through a status-conditional write so that
// two concurrent requests against the same order cannot both win. The
// ready -> assigned edge goes through the repository's atomic claim; losing
// that race surfaces as order.ErrAlreadyAssigned.
//
// Side effects ride the same transaction: picking up issues a delivery code
// for the customer, delivering verifies and burns it. Notifications are
// published after commit and never fail the transition.
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
	proofs     *services.ProofService
	publisher  ports.NotificationPublisher
	recorder   TransitionRecorder
	logger     *slog.Logger
}

// NewRequestTransitionCommandHandler creates a handler for transition requests.
// The recorder may be nil when metrics are not wired.
func NewRequestTransitionCommandHandler(
	uowFactory UoWFactory,
	proofs *services.ProofService,
	publisher ports.NotificationPublisher,
	recorder TransitionRecorder,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		proofs:     proofs,
		publisher:  publisher,
		recorder:   recorder,
		logger:     logger,
	}
}

// Handle processes one transition request and returns the updated aggregate.
// Rejections come back as the domain's transition errors; a lost claim or a
// concurrent update of the same order surfaces as a conflict.
func (h *RequestTransitionCommandHandler) Handle(
	ctx context.Context, cmd RequestTransitionCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.Target(), cmd.Actor(), cmd.Note()); err != nil {
		h.observe(from, cmd.Target(), outcomeFor(err))
		return nil, err
	}

	// The delivered edge needs the courier to present the code issued at
	// pickup. Verified before anything is written, so a wrong code leaves
	// the stored order untouched.
	if from == order.OnTheWay && cmd.Target() == order.Delivered {
		if err = h.verifyProof(ctx, uow, cmd); err != nil {
			h.observe(from, cmd.Target(), outcomeFor(err))
			return nil, err
		}
	}

	if from == order.Ready && cmd.Target() == order.Assigned {
		err = uow.OrderRepository().Claim(ctx, aggregate)
	} else {
		err = uow.OrderRepository().Update(ctx, aggregate, from)
	}
	if err != nil {
		h.observe(from, cmd.Target(), outcomeFor(err))
		return nil, err
	}

	var issuedCode string
	switch {
	case from == order.Assigned && cmd.Target() == order.PickedUp:
		issuedCode, err = h.issueProof(ctx, uow, aggregate)
		if err != nil {
			return nil, err
		}
	case from == order.OnTheWay && cmd.Target() == order.Delivered:
		// The code is single use.
		if err = uow.ProofStore().Delete(ctx, aggregate.ID()); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.observe(from, cmd.Target(), OutcomeApplied)
	h.publishAsync(aggregate, aggregate.PullEvents(), issuedCode)

	return aggregate, nil
}

// verifyProof checks the presented delivery code. A failed check increments
// the attempt counter and commits that increment on its own, so retries
// against the attempt budget stick even though the transition is rejected.
func (h *RequestTransitionCommandHandler) verifyProof(
	ctx context.Context, uow UoW, cmd RequestTransitionCommand,
) error {
	proof, err := uow.ProofStore().Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return order.ErrProofInvalid
		}
		return err
	}

	err = h.proofs.Verify(proof, cmd.ProofCode())
	if err == nil {
		return nil
	}

	if errors.Is(err, order.ErrProofInvalid) {
		if incErr := uow.ProofStore().IncrementAttempts(ctx, cmd.OrderID()); incErr != nil {
			return incErr
		}
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return commitErr
		}
	}

	return err
}

// issueProof generates the delivery code at pickup, stores its hash and
// returns the plain code for the post-commit customer notification.
func (h *RequestTransitionCommandHandler) issueProof(
	ctx context.Context, uow UoW, aggregate *order.Order,
) (string, error) {
	code, proof, err := h.proofs.Issue(aggregate.ID())
	if err != nil {
		return "", err
	}

	if err = uow.ProofStore().Save(ctx, proof); err != nil {
		return "", err
	}

	return code, nil
}

// publishAsync sends the lifecycle notifications after the transaction has
// committed. Publishing is best effort: failures are logged and swallowed,
// the applied transition stands.
func (h *RequestTransitionCommandHandler) publishAsync(
	aggregate *order.Order, events []order.StatusChangedEvent, issuedCode string,
) {
	if h.publisher == nil {
		return
	}

	orderID := aggregate.ID()
	number := aggregate.Number()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		for _, event := range events {
			if err := h.publisher.PublishStatusChanged(ctx, event); err != nil {
				h.logger.Error("publishing status change",
					slog.String("orderID", orderID.String()),
					slog.String("to", event.To.String()),
					slog.Any("error", err),
				)
			}
		}

		if issuedCode == "" {
			return
		}

		if err := h.publisher.PublishDeliveryCodeIssued(ctx, orderID, number, issuedCode); err != nil {
			h.logger.Error("publishing delivery code",
				slog.String("orderID", orderID.String()),
				slog.Any("error", err),
			)
		}
	}()
}

func (h *RequestTransitionCommandHandler) observe(from, to order.Status, outcome string) {
	if h.recorder == nil {
		return
	}
	h.recorder.ObserveTransition(from, to, outcome)
}

// outcomeFor maps a rejection to its metric label.
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, order.ErrNotCancellable):
		return OutcomeNotCancellable
	case errors.Is(err, order.ErrUnauthorizedTransition):
		return OutcomeUnauthorized
	case errors.Is(err, order.ErrInvalidTransition):
		return OutcomeInvalid
	case errors.Is(err, order.ErrAlreadyAssigned), errors.Is(err, errs.ErrVersionIsInvalid):
		return OutcomeConflict
	case errors.Is(err, order.ErrProofInvalid):
		return OutcomeProofInvalid
	default:
		return OutcomeError
	}
}
