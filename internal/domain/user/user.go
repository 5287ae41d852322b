package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`

	AvatarKey   string `gorm:"column:avatar_key" json:"-"`
	AvatarURL   string `gorm:"column:avatar_url" json:"avatar_url"`
	AvatarColor string `gorm:"column:avatar_color" json:"avatar_color"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// PublicName is the name other participants see: the display name when set,
// otherwise the local part of the email.
func (u *User) PublicName() string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	return LocalPart(u.Email)
}

// HasUploadedAvatar reports whether the current avatar is a user upload
// rather than a generated initials image. Uploads are keyed under uploads/,
// generated images under avatars/.
func (u *User) HasUploadedAvatar() bool {
	return u != nil && strings.HasPrefix(u.AvatarKey, "uploads/")
}

func LocalPart(email string) string {
	email = strings.TrimSpace(email)
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
