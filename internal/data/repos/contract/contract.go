package contract

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/pactfit/pactfit-backend/internal/domain"
	"github.com/pactfit/pactfit-backend/internal/pkg/logger"
)

type ContractRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) ([]*types.Contract, error)
	GetVisibleToUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email string) ([]*types.Contract, error)
	GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.Contract, error)
	GetByParticipantIDs(ctx context.Context, tx *gorm.DB, participantIDs []uuid.UUID) ([]*types.Contract, error)
	GetAcceptedMissingParticipantName(ctx context.Context, tx *gorm.DB) ([]*types.Contract, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, contractID uuid.UUID, fields map[string]any) error
	AcceptPending(ctx context.Context, tx *gorm.DB, contractID, participantID uuid.UUID, participantName string, acceptedAt time.Time) (bool, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) error
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	repoLog := baseLog.With("repo", "ContractRepo")
	return &contractRepo{db: db, log: repoLog}
}

func (cr *contractRepo) Create(ctx context.Context, tx *gorm.DB, contracts []*types.Contract) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contracts) == 0 {
		return []*types.Contract{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&contracts).Error; err != nil {
		return nil, err
	}

	return contracts, nil
}

func (cr *contractRepo) GetByIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contract

	if len(contractIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", contractIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetVisibleToUser filters on the server what older clients filtered locally:
// rows where the user is creator or invitee, excluding deleted and declined.
func (cr *contractRepo) GetVisibleToUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, email string) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contract

	if err := transaction.WithContext(ctx).
		Where("(created_by = ? OR LOWER(participant_email) = ?)", userID, strings.ToLower(email)).
		Where("status NOT IN ?", []types.ContractStatus{types.ContractDeleted, types.ContractDeclined}).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contractRepo) GetByCreatorIDs(ctx context.Context, tx *gorm.DB, creatorIDs []uuid.UUID) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contract

	if len(creatorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("created_by IN ?", creatorIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contractRepo) GetByParticipantIDs(ctx context.Context, tx *gorm.DB, participantIDs []uuid.UUID) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contract

	if len(participantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("participant_id IN ?", participantIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetAcceptedMissingParticipantName feeds the name repair pass.
func (cr *contractRepo) GetAcceptedMissingParticipantName(ctx context.Context, tx *gorm.DB) ([]*types.Contract, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contract

	if err := transaction.WithContext(ctx).
		Where("status = ?", types.ContractAccepted).
		Where("participant_id IS NOT NULL").
		Where("(participant_name IS NULL OR participant_name = '')").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contractRepo) UpdateFields(ctx context.Context, tx *gorm.DB, contractID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Contract{}).
		Where("id = ?", contractID).
		Updates(fields).Error
}

// AcceptPending flips a pending contract to accepted in one conditional
// update. Returns false when the row was not pending anymore, which makes
// double-accepts race-safe without a row lock.
func (cr *contractRepo) AcceptPending(ctx context.Context, tx *gorm.DB, contractID, participantID uuid.UUID, participantName string, acceptedAt time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Contract{}).
		Where("id = ? AND status = ?", contractID, types.ContractPending).
		Updates(map[string]any{
			"status":           types.ContractAccepted,
			"participant_id":   participantID,
			"participant_name": participantName,
			"updated_at":       acceptedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (cr *contractRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, contractIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contractIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN (?)", contractIDs).
		Delete(&types.Contract{}).Error; err != nil {
		return err
	}

	return nil
}
