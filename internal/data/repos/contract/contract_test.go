package contract

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pactfit/pactfit-backend/internal/data/repos/testutil"
	types "github.com/pactfit/pactfit-backend/internal/domain"
)

func TestContractRepoLifecycleQueries(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewContractRepo(db, testutil.Logger(t))

	creator := testutil.SeedUser(t, ctx, tx, "creator@example.com")
	buddy := testutil.SeedUser(t, ctx, tx, "buddy@example.com")

	c := testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractPending)

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByCreatorIDs(ctx, tx, []uuid.UUID{creator.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByCreatorIDs: err=%v len=%d", err, len(rows))
	}

	ok, err := repo.AcceptPending(ctx, tx, c.ID, buddy.ID, "Buddy", time.Now())
	if err != nil || !ok {
		t.Fatalf("AcceptPending: ok=%v err=%v", ok, err)
	}

	// A second accept must be a no-op.
	ok, err = repo.AcceptPending(ctx, tx, c.ID, buddy.ID, "Buddy", time.Now())
	if err != nil {
		t.Fatalf("AcceptPending repeat: %v", err)
	}
	if ok {
		t.Fatalf("AcceptPending must not apply to a non-pending contract")
	}

	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("reload: err=%v len=%d", err, len(rows))
	}
	got := rows[0]
	if got.Status != types.ContractAccepted || got.ParticipantID == nil || *got.ParticipantID != buddy.ID || got.ParticipantName != "Buddy" {
		t.Fatalf("accepted contract = %+v", got)
	}

	if rows, err := repo.GetByParticipantIDs(ctx, tx, []uuid.UUID{buddy.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByParticipantIDs: err=%v len=%d", err, len(rows))
	}

	if err := repo.FullDeleteByIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("FullDeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after FullDeleteByIDs: err=%v len=%d", err, len(rows))
	}
}

func TestContractRepoVisibility(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewContractRepo(db, testutil.Logger(t))

	creator := testutil.SeedUser(t, ctx, tx, "vis-creator@example.com")
	buddy := testutil.SeedUser(t, ctx, tx, "vis-buddy@example.com")

	active := testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractPending)
	testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractDeleted)
	testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractDeclined)
	testutil.SeedContract(t, ctx, tx, creator.ID, "someone-else@example.com", types.ContractPending)

	rows, err := repo.GetVisibleToUser(ctx, tx, buddy.ID, "VIS-BUDDY@example.com")
	if err != nil {
		t.Fatalf("GetVisibleToUser: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != active.ID {
		t.Fatalf("invitee should see exactly the active invite, got %d rows", len(rows))
	}

	rows, err = repo.GetVisibleToUser(ctx, tx, creator.ID, creator.Email)
	if err != nil {
		t.Fatalf("GetVisibleToUser creator: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("creator should see both active contracts, got %d", len(rows))
	}
}

func TestContractRepoRepairQuery(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewContractRepo(db, testutil.Logger(t))

	creator := testutil.SeedUser(t, ctx, tx, "repair-creator@example.com")
	buddy := testutil.SeedUser(t, ctx, tx, "repair-buddy@example.com")

	broken := testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractAccepted)
	if err := repo.UpdateFields(ctx, tx, broken.ID, map[string]any{
		"participant_id":   buddy.ID,
		"participant_name": "",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	healthy := testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractAccepted)
	if err := repo.UpdateFields(ctx, tx, healthy.ID, map[string]any{
		"participant_id":   buddy.ID,
		"participant_name": "Buddy",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	rows, err := repo.GetAcceptedMissingParticipantName(ctx, tx)
	if err != nil {
		t.Fatalf("GetAcceptedMissingParticipantName: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != broken.ID {
		t.Fatalf("repair query should return only the broken row, got %d rows", len(rows))
	}
}
