package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pactfit/pactfit-backend/internal/data/repos"
	types "github.com/pactfit/pactfit-backend/internal/domain"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/realtime"
)

// ContractNotifier fans lifecycle changes out to both parties. Payloads carry
// identifiers only; clients refetch the contract list on receipt.

type ContractNotifier interface {
	ContractCreated(c *types.Contract)
	ContractAccepted(c *types.Contract)
	ContractDeclined(c *types.Contract)
	ContractDeleteRequested(c *types.Contract)
	ContractDeleteCanceled(c *types.Contract)
	ContractDeleted(c *types.Contract)
	WorkoutToggled(c *types.Contract, userID uuid.UUID, date string, completed bool)
}

type contractNotifier struct {
	log      *logger.Logger
	emit     SSEEmitter
	userRepo repos.UserRepo
}

func NewContractNotifier(log *logger.Logger, emit SSEEmitter, userRepo repos.UserRepo) ContractNotifier {
	return &contractNotifier{
		log:      log.With("component", "ContractNotifier"),
		emit:     emit,
		userRepo: userRepo,
	}
}

func (n *contractNotifier) publishToParties(c *types.Contract, event realtime.SSEEvent, data map[string]any) {
	if n == nil || n.emit == nil || c == nil {
		return
	}
	ctx := context.Background()
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.ContractChannel(c.ID.String()),
		Event:   event,
		Data:    data,
	})
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(c.CreatedBy.String()),
		Event:   event,
		Data:    data,
	})
	if participantID, ok := n.participantUserID(ctx, c); ok {
		n.emit.Emit(ctx, realtime.SSEMessage{
			Channel: realtime.UserChannel(participantID.String()),
			Event:   event,
			Data:    data,
		})
	}
}

// participantUserID resolves the second party's user channel. Before
// acceptance the invitee is known only by email; an unregistered invitee has
// no channel and is skipped.
func (n *contractNotifier) participantUserID(ctx context.Context, c *types.Contract) (uuid.UUID, bool) {
	if c.ParticipantID != nil {
		return *c.ParticipantID, true
	}
	if n.userRepo == nil || c.ParticipantEmail == "" {
		return uuid.Nil, false
	}
	users, err := n.userRepo.GetByEmails(ctx, nil, []string{c.ParticipantEmail})
	if err != nil {
		n.log.Warn("Failed to resolve invitee for event fan-out", "contractID", c.ID, "error", err)
		return uuid.Nil, false
	}
	if len(users) == 0 || users[0] == nil {
		return uuid.Nil, false
	}
	return users[0].ID, true
}

func (n *contractNotifier) ContractCreated(c *types.Contract) {
	n.publishToParties(c, realtime.SSEEventContractCreated, map[string]any{"contract_id": c.ID})
}

func (n *contractNotifier) ContractAccepted(c *types.Contract) {
	n.publishToParties(c, realtime.SSEEventContractAccepted, map[string]any{"contract_id": c.ID})
}

func (n *contractNotifier) ContractDeclined(c *types.Contract) {
	n.publishToParties(c, realtime.SSEEventContractDeclined, map[string]any{"contract_id": c.ID})
}

func (n *contractNotifier) ContractDeleteRequested(c *types.Contract) {
	n.publishToParties(c, realtime.SSEEventContractDeleteRequested, map[string]any{"contract_id": c.ID})
}

func (n *contractNotifier) ContractDeleteCanceled(c *types.Contract) {
	n.publishToParties(c, realtime.SSEEventContractDeleteCanceled, map[string]any{"contract_id": c.ID})
}

func (n *contractNotifier) ContractDeleted(c *types.Contract) {
	n.publishToParties(c, realtime.SSEEventContractDeleted, map[string]any{"contract_id": c.ID})
}

func (n *contractNotifier) WorkoutToggled(c *types.Contract, userID uuid.UUID, date string, completed bool) {
	n.publishToParties(c, realtime.SSEEventWorkoutToggled, map[string]any{
		"contract_id": c.ID,
		"user_id":     userID,
		"date":        date,
		"completed":   completed,
	})
}

// =========================
// User notifier
// =========================

type UserNotifier interface {
	UserNameChanged(userID uuid.UUID, displayName string)
	UserAvatarChanged(userID uuid.UUID, avatarURL string)
}

type userNotifier struct {
	emit SSEEmitter
}

func NewUserNotifier(emit SSEEmitter) UserNotifier {
	return &userNotifier{emit: emit}
}

func (n *userNotifier) UserNameChanged(userID uuid.UUID, displayName string) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.UserChannel(userID.String()),
		Event:   realtime.SSEEventUserNameChanged,
		Data:    map[string]any{"user_id": userID, "display_name": displayName},
	})
}

func (n *userNotifier) UserAvatarChanged(userID uuid.UUID, avatarURL string) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(context.Background(), realtime.SSEMessage{
		Channel: realtime.UserChannel(userID.String()),
		Event:   realtime.SSEEventUserAvatarChanged,
		Data:    map[string]any{"user_id": userID, "avatar_url": avatarURL},
	})
}
