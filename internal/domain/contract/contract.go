package contract

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	// StatusDeclined is excluded by every visibility filter but no transition
	// writes it: decline marks the contract deleted outright. Kept because
	// historical rows may carry it.
	StatusDeclined Status = "declined"
	StatusDeleted  Status = "deleted"
)

// Contract is a two-party training agreement. CreatedByName and
// ParticipantName are denormalized copies of the parties' display names; they
// can go stale and are fixed by the repair pass and the rename propagation
// batch.
type Contract struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`

	CreatedBy     uuid.UUID `gorm:"type:uuid;not null;index;column:created_by" json:"created_by"`
	CreatedByName string    `gorm:"column:created_by_name" json:"created_by_name"`

	ParticipantEmail string     `gorm:"not null;index;column:participant_email" json:"participant_email"`
	ParticipantID    *uuid.UUID `gorm:"type:uuid;index;column:participant_id" json:"participant_id,omitempty"`
	ParticipantName  string     `gorm:"column:participant_name" json:"participant_name"`

	Status   Status         `gorm:"not null;index" json:"status"`
	Schedule datatypes.JSON `gorm:"not null" json:"schedule"`

	DeleteRequestedBy *uuid.UUID `gorm:"type:uuid;column:delete_requested_by" json:"delete_requested_by,omitempty"`
	DeleteRequestedAt *time.Time `gorm:"column:delete_requested_at" json:"delete_requested_at,omitempty"`
	DeleteConfirmedBy *uuid.UUID `gorm:"type:uuid;column:delete_confirmed_by" json:"delete_confirmed_by,omitempty"`
	DeleteConfirmedAt *time.Time `gorm:"column:delete_confirmed_at" json:"delete_confirmed_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Contract) TableName() string { return "contract" }

// Visible reports whether the contract belongs in either party's active list.
func (c *Contract) Visible() bool {
	return c.Status != StatusDeleted && c.Status != StatusDeclined
}

// VisibleTo combines membership and the active-status filter: the caller sees
// the contract iff they created it or are invited by email, and it is neither
// deleted nor declined.
func (c *Contract) VisibleTo(userID uuid.UUID, email string) bool {
	if !c.Visible() {
		return false
	}
	return c.CreatedBy == userID || strings.EqualFold(c.ParticipantEmail, email)
}

// IsParty reports whether the user is the creator or the accepted participant.
func (c *Contract) IsParty(userID uuid.UUID) bool {
	if c.CreatedBy == userID {
		return true
	}
	return c.ParticipantID != nil && *c.ParticipantID == userID
}

// OtherParty returns the counterpart's user id, or nil when the invite is
// still pending and selfID is the creator.
func (c *Contract) OtherParty(selfID uuid.UUID) *uuid.UUID {
	if c.CreatedBy == selfID {
		return c.ParticipantID
	}
	created := c.CreatedBy
	return &created
}

func (c *Contract) IsInvitee(email string) bool {
	return strings.EqualFold(c.ParticipantEmail, email)
}

func (c *Contract) CanAccept(email string) bool {
	return c.Status == StatusPending && c.IsInvitee(email)
}

func (c *Contract) CanDecline(email string) bool {
	return c.Status == StatusPending && c.IsInvitee(email)
}

func (c *Contract) CanRequestDelete(userID uuid.UUID) bool {
	return c.Status == StatusAccepted && c.DeleteRequestedBy == nil && c.IsParty(userID)
}

// CanConfirmDelete: only the party who did not request deletion can confirm.
func (c *Contract) CanConfirmDelete(userID uuid.UUID) bool {
	return c.DeleteRequestedBy != nil && *c.DeleteRequestedBy != userID && c.IsParty(userID)
}

func (c *Contract) CanCancelDelete(userID uuid.UUID) bool {
	return c.DeleteRequestedBy != nil && c.IsParty(userID)
}
