package workout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pactfit/pactfit-backend/internal/data/repos/testutil"
	types "github.com/pactfit/pactfit-backend/internal/domain"
)

func TestWorkoutRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewWorkoutRepo(db, testutil.Logger(t))

	creator := testutil.SeedUser(t, ctx, tx, "workoutrepo@example.com")
	buddy := testutil.SeedUser(t, ctx, tx, "workoutrepo-buddy@example.com")
	c := testutil.SeedContract(t, ctx, tx, creator.ID, buddy.Email, types.ContractAccepted)

	w := &types.Workout{
		ID:         uuid.New(),
		ContractID: c.ID,
		UserID:     creator.ID,
		Date:       "2024-03-01",
		Completed:  true,
	}
	if _, err := repo.Create(ctx, tx, []*types.Workout{w}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByTriple(ctx, tx, c.ID, creator.ID, "2024-03-01")
	if err != nil {
		t.Fatalf("GetByTriple: %v", err)
	}
	if got == nil || got.ID != w.ID {
		t.Fatalf("GetByTriple = %+v, want seeded record", got)
	}

	if got, err := repo.GetByTriple(ctx, tx, c.ID, creator.ID, "2024-03-02"); err != nil || got != nil {
		t.Fatalf("GetByTriple miss: got=%+v err=%v, want nil, nil", got, err)
	}

	testutil.SeedWorkout(t, ctx, tx, c.ID, buddy.ID, "2024-03-01")
	if rows, err := repo.GetByContractIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByContractIDs: err=%v len=%d", err, len(rows))
	}

	if err := repo.DeleteByTriple(ctx, tx, c.ID, creator.ID, "2024-03-01"); err != nil {
		t.Fatalf("DeleteByTriple: %v", err)
	}
	if got, err := repo.GetByTriple(ctx, tx, c.ID, creator.ID, "2024-03-01"); err != nil || got != nil {
		t.Fatalf("after DeleteByTriple: got=%+v err=%v", got, err)
	}

	if err := repo.FullDeleteByContractIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil {
		t.Fatalf("FullDeleteByContractIDs: %v", err)
	}
	if rows, err := repo.GetByContractIDs(ctx, tx, []uuid.UUID{c.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after FullDeleteByContractIDs: err=%v len=%d", err, len(rows))
	}
}

func TestWorkoutRepoUniqueTriple(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewWorkoutRepo(db, testutil.Logger(t))

	creator := testutil.SeedUser(t, ctx, tx, "workoutdup@example.com")
	c := testutil.SeedContract(t, ctx, tx, creator.ID, "dup-buddy@example.com", types.ContractAccepted)

	testutil.SeedWorkout(t, ctx, tx, c.ID, creator.ID, "2024-04-01")

	dup := &types.Workout{
		ID:         uuid.New(),
		ContractID: c.ID,
		UserID:     creator.ID,
		Date:       "2024-04-01",
		Completed:  false,
	}
	if _, err := repo.Create(ctx, tx, []*types.Workout{dup}); err == nil {
		t.Fatalf("duplicate (contract, user, date) must violate the unique index")
	}
}
