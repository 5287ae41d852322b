package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pactfit/pactfit-backend/internal/data/repos"
	types "github.com/pactfit/pactfit-backend/internal/domain"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
	"github.com/pactfit/pactfit-backend/internal/requestdata"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateDisplayName(ctx context.Context, displayName string) (*types.User, error)
	UploadAvatarImage(ctx context.Context, raw []byte) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	contractRepo  repos.ContractRepo
	avatarService AvatarService
	userNotifier  UserNotifier
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	contractRepo repos.ContractRepo,
	avatarService AvatarService,
	userNotifier UserNotifier,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		contractRepo:  contractRepo,
		avatarService: avatarService,
		userNotifier:  userNotifier,
	}
}

func (us *userService) requireUser(ctx context.Context, tx *gorm.DB) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: request data not set in context", ErrUnauthorized)
	}
	found, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	return found[0], nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	return us.requireUser(ctx, nil)
}

// UpdateDisplayName renames the user and rewrites the denormalized name
// copies on every contract they are party to.
func (us *userService) UpdateDisplayName(ctx context.Context, displayName string) (*types.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name required", ErrInvalidInput)
	}

	var updated *types.User
	var avatarRegenerated bool
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		if err := us.userRepo.UpdateDisplayName(ctx, tx, user.ID, displayName); err != nil {
			return fmt.Errorf("failed to update display name: %w", err)
		}
		user.DisplayName = displayName

		// Initials avatars follow the name; uploaded images are left alone.
		if us.avatarService != nil && !user.HasUploadedAvatar() {
			if err := us.avatarService.CreateUserAvatar(ctx, tx, user); err != nil {
				return fmt.Errorf("failed to regenerate avatar: %w", err)
			}
			if err := us.userRepo.UpdateAvatarFields(ctx, tx, user.ID, user.AvatarKey, user.AvatarURL, user.AvatarColor); err != nil {
				return fmt.Errorf("failed to update avatar fields: %w", err)
			}
			avatarRegenerated = true
		}

		if err := us.propagateName(ctx, tx, user); err != nil {
			return err
		}
		updated = user
		return nil
	}); err != nil {
		return nil, err
	}

	if us.userNotifier != nil {
		us.userNotifier.UserNameChanged(updated.ID, updated.DisplayName)
		if avatarRegenerated {
			us.userNotifier.UserAvatarChanged(updated.ID, updated.AvatarURL)
		}
	}
	return updated, nil
}

// propagateName rewrites created_by_name and participant_name on the user's
// contracts inside the rename transaction, so readers never see a mix of old
// and new names.
func (us *userService) propagateName(ctx context.Context, tx *gorm.DB, user *types.User) error {
	name := user.PublicName()

	created, err := us.contractRepo.GetByCreatorIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		return fmt.Errorf("failed to load created contracts: %w", err)
	}
	participating, err := us.contractRepo.GetByParticipantIDs(ctx, tx, []uuid.UUID{user.ID})
	if err != nil {
		return fmt.Errorf("failed to load participating contracts: %w", err)
	}

	for _, c := range created {
		if err := us.contractRepo.UpdateFields(ctx, tx, c.ID, map[string]any{
			"created_by_name": name,
		}); err != nil {
			return fmt.Errorf("failed to propagate display name: %w", err)
		}
	}
	for _, c := range participating {
		if err := us.contractRepo.UpdateFields(ctx, tx, c.ID, map[string]any{
			"participant_name": name,
		}); err != nil {
			return fmt.Errorf("failed to propagate display name: %w", err)
		}
	}
	return nil
}

func (us *userService) UploadAvatarImage(ctx context.Context, raw []byte) (*types.User, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	if us.avatarService == nil {
		return nil, fmt.Errorf("avatar service not configured")
	}

	var updated *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.requireUser(ctx, tx)
		if err != nil {
			return err
		}
		if err := us.avatarService.UpdateUserAvatarFromImage(ctx, tx, user, raw); err != nil {
			return err
		}
		updated = user
		return nil
	}); err != nil {
		return nil, err
	}

	if us.userNotifier != nil {
		us.userNotifier.UserAvatarChanged(updated.ID, updated.AvatarURL)
	}
	return updated, nil
}
