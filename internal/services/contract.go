package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pactfit/pactfit-backend/internal/data/repos"
	types "github.com/pactfit/pactfit-backend/internal/domain"
	"github.com/pactfit/pactfit-backend/internal/domain/contract"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/requestdata"
)

type CreateContractInput struct {
	Title            string
	Description      string
	ParticipantEmail string
	Schedule         contract.Schedule
}

type ContractService interface {
	CreateContract(ctx context.Context, input CreateContractInput) (*types.Contract, error)
	ListContracts(ctx context.Context) ([]*types.Contract, error)
	GetContract(ctx context.Context, contractID uuid.UUID) (*types.Contract, error)
	AcceptContract(ctx context.Context, contractID uuid.UUID) (*types.Contract, error)
	DeclineContract(ctx context.Context, contractID uuid.UUID) error
	RequestDelete(ctx context.Context, contractID uuid.UUID) (*types.Contract, error)
	ConfirmDelete(ctx context.Context, contractID uuid.UUID) error
	CancelDelete(ctx context.Context, contractID uuid.UUID) (*types.Contract, error)
	RepairParticipantNames(ctx context.Context) (int, error)
}

type contractService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	contractRepo repos.ContractRepo
	workoutRepo  repos.WorkoutRepo
	notifier     ContractNotifier
}

func NewContractService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	contractRepo repos.ContractRepo,
	workoutRepo repos.WorkoutRepo,
	notifier ContractNotifier,
) ContractService {
	serviceLog := log.With("service", "ContractService")
	return &contractService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		contractRepo: contractRepo,
		workoutRepo:  workoutRepo,
		notifier:     notifier,
	}
}

func (cs *contractService) requireUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: request data not set in context", ErrUnauthorized)
	}
	found, err := cs.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	return found[0], nil
}

func (cs *contractService) getContract(ctx context.Context, tx *gorm.DB, contractID uuid.UUID) (*types.Contract, error) {
	found, err := cs.contractRepo.GetByIDs(ctx, tx, []uuid.UUID{contractID})
	if err != nil {
		return nil, fmt.Errorf("error fetching contract: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: contract does not exist", ErrNotFound)
	}
	return found[0], nil
}

func (cs *contractService) CreateContract(ctx context.Context, input CreateContractInput) (*types.Contract, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(input.ParticipantEmail))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid participant email required", ErrInvalidInput)
	}
	if err := input.Schedule.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	scheduleJSON, err := input.Schedule.JSON()
	if err != nil {
		return nil, err
	}

	user, err := cs.requireUser(ctx, nil)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(user.Email, email) {
		return nil, fmt.Errorf("%w: cannot invite yourself", ErrInvalidInput)
	}

	c := &types.Contract{
		ID:               uuid.New(),
		Title:            title,
		Description:      strings.TrimSpace(input.Description),
		CreatedBy:        user.ID,
		CreatedByName:    user.PublicName(),
		ParticipantEmail: email,
		Status:           types.ContractPending,
		Schedule:         scheduleJSON,
	}

	if _, err := cs.contractRepo.Create(ctx, nil, []*types.Contract{c}); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	if cs.notifier != nil {
		cs.notifier.ContractCreated(c)
	}
	return c, nil
}

func (cs *contractService) ListContracts(ctx context.Context) ([]*types.Contract, error) {
	user, err := cs.requireUser(ctx, nil)
	if err != nil {
		return nil, err
	}
	contracts, err := cs.contractRepo.GetVisibleToUser(ctx, nil, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (cs *contractService) GetContract(ctx context.Context, contractID uuid.UUID) (*types.Contract, error) {
	user, err := cs.requireUser(ctx, nil)
	if err != nil {
		return nil, err
	}
	c, err := cs.getContract(ctx, nil, contractID)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(user.ID, user.Email) {
		return nil, fmt.Errorf("%w: contract does not exist", ErrNotFound)
	}
	return c, nil
}

// AcceptContract binds the caller as participant. The conditional update in
// the repo makes a concurrent double-accept lose cleanly.
func (cs *contractService) AcceptContract(ctx context.Context, contractID uuid.UUID) (*types.Contract, error) {
	var accepted *types.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := cs.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		c, err := cs.getContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if !c.IsInvitee(user.Email) {
			return fmt.Errorf("%w: only the invited participant may accept", ErrForbidden)
		}
		if c.Status != types.ContractPending {
			return fmt.Errorf("%w: contract is not pending", ErrConflict)
		}

		ok, err := cs.contractRepo.AcceptPending(ctx, tx, c.ID, user.ID, user.PublicName(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to accept contract: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: contract is not pending", ErrConflict)
		}

		accepted, err = cs.getContract(ctx, tx, contractID)
		return err
	}); err != nil {
		return nil, err
	}

	if cs.notifier != nil {
		cs.notifier.ContractAccepted(accepted)
	}
	return accepted, nil
}

// DeclineContract removes a pending invite. Declined invites are marked
// deleted outright so they drop out of both parties' lists for good.
func (cs *contractService) DeclineContract(ctx context.Context, contractID uuid.UUID) error {
	var declined *types.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := cs.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		c, err := cs.getContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if !c.CanDecline(user.Email) {
			return fmt.Errorf("%w: only the invited participant may decline a pending contract", ErrForbidden)
		}
		if err := cs.contractRepo.UpdateFields(ctx, tx, c.ID, map[string]any{
			"status": types.ContractDeleted,
		}); err != nil {
			return fmt.Errorf("failed to decline contract: %w", err)
		}
		declined = c
		return nil
	}); err != nil {
		return err
	}

	if cs.notifier != nil {
		cs.notifier.ContractDeclined(declined)
	}
	return nil
}

func (cs *contractService) RequestDelete(ctx context.Context, contractID uuid.UUID) (*types.Contract, error) {
	var updated *types.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := cs.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		c, err := cs.getContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if !c.IsParty(user.ID) {
			return fmt.Errorf("%w: not a party to this contract", ErrForbidden)
		}
		if c.Status != types.ContractAccepted {
			return fmt.Errorf("%w: only accepted contracts use the delete handshake", ErrConflict)
		}
		if c.DeleteRequestedBy != nil {
			return fmt.Errorf("%w: a delete request is already pending", ErrConflict)
		}

		now := time.Now()
		if err := cs.contractRepo.UpdateFields(ctx, tx, c.ID, map[string]any{
			"delete_requested_by": user.ID,
			"delete_requested_at": now,
		}); err != nil {
			return fmt.Errorf("failed to request delete: %w", err)
		}

		updated, err = cs.getContract(ctx, tx, contractID)
		return err
	}); err != nil {
		return nil, err
	}

	if cs.notifier != nil {
		cs.notifier.ContractDeleteRequested(updated)
	}
	return updated, nil
}

func (cs *contractService) ConfirmDelete(ctx context.Context, contractID uuid.UUID) error {
	var deleted *types.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := cs.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		c, err := cs.getContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if !c.IsParty(user.ID) {
			return fmt.Errorf("%w: not a party to this contract", ErrForbidden)
		}
		if c.DeleteRequestedBy == nil {
			return fmt.Errorf("%w: no delete request pending", ErrConflict)
		}
		if *c.DeleteRequestedBy == user.ID {
			return fmt.Errorf("%w: the requester cannot confirm their own delete request", ErrForbidden)
		}

		now := time.Now()
		if err := cs.contractRepo.UpdateFields(ctx, tx, c.ID, map[string]any{
			"status":              types.ContractDeleted,
			"delete_confirmed_by": user.ID,
			"delete_confirmed_at": now,
		}); err != nil {
			return fmt.Errorf("failed to confirm delete: %w", err)
		}
		deleted = c
		return nil
	}); err != nil {
		return err
	}

	if cs.notifier != nil {
		cs.notifier.ContractDeleted(deleted)
	}
	return nil
}

func (cs *contractService) CancelDelete(ctx context.Context, contractID uuid.UUID) (*types.Contract, error) {
	var updated *types.Contract
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := cs.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		c, err := cs.getContract(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if !c.IsParty(user.ID) {
			return fmt.Errorf("%w: not a party to this contract", ErrForbidden)
		}
		if c.DeleteRequestedBy == nil {
			return fmt.Errorf("%w: no delete request pending", ErrConflict)
		}

		if err := cs.contractRepo.UpdateFields(ctx, tx, c.ID, map[string]any{
			"delete_requested_by": nil,
			"delete_requested_at": nil,
		}); err != nil {
			return fmt.Errorf("failed to cancel delete: %w", err)
		}

		updated, err = cs.getContract(ctx, tx, contractID)
		return err
	}); err != nil {
		return nil, err
	}

	if cs.notifier != nil {
		cs.notifier.ContractDeleteCanceled(updated)
	}
	return updated, nil
}

// RepairParticipantNames backfills participant_name on accepted contracts
// where the denormalized copy was lost. Runs at startup and is safe to run
// repeatedly.
func (cs *contractService) RepairParticipantNames(ctx context.Context) (int, error) {
	broken, err := cs.contractRepo.GetAcceptedMissingParticipantName(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to find contracts needing repair: %w", err)
	}
	if len(broken) == 0 {
		return 0, nil
	}

	participantIDs := make([]uuid.UUID, 0, len(broken))
	for _, c := range broken {
		if c.ParticipantID != nil {
			participantIDs = append(participantIDs, *c.ParticipantID)
		}
	}
	users, err := cs.userRepo.GetByIDs(ctx, nil, participantIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load participants for repair: %w", err)
	}
	byID := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var repaired int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	results := make([]bool, len(broken))
	for i, c := range broken {
		i, c := i, c
		u, ok := byID[*c.ParticipantID]
		if !ok {
			cs.log.Warn("Cannot repair contract, participant missing", "contractID", c.ID, "participantID", *c.ParticipantID)
			continue
		}
		name := u.PublicName()
		g.Go(func() error {
			if err := cs.contractRepo.UpdateFields(gctx, nil, c.ID, map[string]any{
				"participant_name": name,
			}); err != nil {
				return fmt.Errorf("failed to repair contract %s: %w", c.ID, err)
			}
			results[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	for _, ok := range results {
		if ok {
			repaired++
		}
	}
	if repaired > 0 {
		cs.log.Info("Repaired participant names", "count", repaired)
	}
	return repaired, nil
}
