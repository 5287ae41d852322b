package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pactfit/pactfit-backend/internal/data/repos/testutil"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "userrepo@example.com")

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(ctx, tx, []string{u.Email}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}

	if exists, err := repo.EmailExists(ctx, tx, u.Email); err != nil || !exists {
		t.Fatalf("EmailExists: exists=%v err=%v", exists, err)
	}
	if exists, err := repo.EmailExists(ctx, tx, "nobody@example.com"); err != nil || exists {
		t.Fatalf("EmailExists miss: exists=%v err=%v", exists, err)
	}

	if err := repo.UpdateDisplayName(ctx, tx, u.ID, "Renamed"); err != nil {
		t.Fatalf("UpdateDisplayName: %v", err)
	}
	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("reload: err=%v len=%d", err, len(rows))
	}
	if rows[0].DisplayName != "Renamed" {
		t.Fatalf("DisplayName = %q, want Renamed", rows[0].DisplayName)
	}

	if err := repo.UpdateAvatarFields(ctx, tx, u.ID, "avatars/u.png", "/media/avatars/u.png", "#FF7043"); err != nil {
		t.Fatalf("UpdateAvatarFields: %v", err)
	}
	rows, err = repo.GetByIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("reload: err=%v len=%d", err, len(rows))
	}
	if rows[0].AvatarKey != "avatars/u.png" || rows[0].AvatarURL != "/media/avatars/u.png" || rows[0].AvatarColor != "#FF7043" {
		t.Fatalf("avatar fields = %+v", rows[0])
	}
}
