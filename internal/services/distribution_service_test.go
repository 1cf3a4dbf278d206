package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-crm-backend/internal/domain"
	"github.com/tbourn/go-crm-backend/internal/repo"
	"github.com/tbourn/go-crm-backend/internal/weighted"
)

func TestDistribute_NoCandidates_MarksWaiting(t *testing.T) {
	db := newServiceDB(t)
	dist := NewDistributionService(db)
	ctx := context.Background()

	src, _ := repo.CreateSource(ctx, db, "Telegram", "tg")
	usr, _ := repo.CreateUser(ctx, db, "u-1")
	r, _ := repo.CreateRequest(ctx, db, usr.ID, src.ID, "m")

	var opID *uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var derr error
		opID, derr = dist.Distribute(ctx, tx, r.ID, src.ID)
		return derr
	})
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if opID != nil {
		t.Fatalf("expected waiting outcome, got operator %d", *opID)
	}

	got, _ := repo.GetRequest(ctx, db, r.ID)
	if got.Status != domain.StatusWaiting || got.OperatorID != nil {
		t.Fatalf("unexpected request after waiting distribution: %+v", got)
	}
}

func TestDistribute_SingleCandidate_AssignsAndIncrements(t *testing.T) {
	db := newServiceDB(t)
	dist := NewDistributionService(db)
	ctx := context.Background()

	op, _ := repo.CreateOperator(ctx, db, "Alice", 5)
	src, _ := repo.CreateSource(ctx, db, "Telegram", "tg")
	_ = repo.UpsertWeight(ctx, db, op.ID, src.ID, 50)
	usr, _ := repo.CreateUser(ctx, db, "u-1")
	r, _ := repo.CreateRequest(ctx, db, usr.ID, src.ID, "m")

	var opID *uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var derr error
		opID, derr = dist.Distribute(ctx, tx, r.ID, src.ID)
		return derr
	})
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if opID == nil || *opID != op.ID {
		t.Fatalf("expected assignment to operator %d, got %v", op.ID, opID)
	}

	got, _ := repo.GetRequest(ctx, db, r.ID)
	if got.Status != domain.StatusAssigned || got.OperatorID == nil || *got.OperatorID != op.ID {
		t.Fatalf("unexpected request after assignment: %+v", got)
	}
	opRow, _ := repo.GetOperator(ctx, db, op.ID)
	if opRow.CurrentLoad != 1 {
		t.Fatalf("expected operator load 1, got %d", opRow.CurrentLoad)
	}
}

func TestDistribute_RespectsCapacity(t *testing.T) {
	db := newServiceDB(t)
	dist := NewDistributionService(db)
	ctx := context.Background()

	// Two operators with capacity 1 each: two assignments fill the pool,
	// the third request must wait.
	op1, _ := repo.CreateOperator(ctx, db, "Alice", 1)
	op2, _ := repo.CreateOperator(ctx, db, "Bob", 1)
	src, _ := repo.CreateSource(ctx, db, "Telegram", "tg")
	_ = repo.UpsertWeight(ctx, db, op1.ID, src.ID, 50)
	_ = repo.UpsertWeight(ctx, db, op2.ID, src.ID, 50)
	usr, _ := repo.CreateUser(ctx, db, "u-1")

	outcomes := make([]*uint, 0, 3)
	for i := 0; i < 3; i++ {
		r, _ := repo.CreateRequest(ctx, db, usr.ID, src.ID, "m")
		var opID *uint
		err := db.Transaction(func(tx *gorm.DB) error {
			var derr error
			opID, derr = dist.Distribute(ctx, tx, r.ID, src.ID)
			return derr
		})
		if err != nil {
			t.Fatalf("Distribute #%d: %v", i, err)
		}
		outcomes = append(outcomes, opID)
	}

	if outcomes[0] == nil || outcomes[1] == nil {
		t.Fatalf("first two requests must be assigned: %v", outcomes)
	}
	if *outcomes[0] == *outcomes[1] {
		t.Fatalf("capacity 1 operators must not be assigned twice: %v", outcomes)
	}
	if outcomes[2] != nil {
		t.Fatalf("third request must wait with the pool exhausted, got operator %d", *outcomes[2])
	}

	for _, id := range []uint{op1.ID, op2.ID} {
		opRow, _ := repo.GetOperator(ctx, db, id)
		if opRow.CurrentLoad != 1 {
			t.Fatalf("operator %d load = %d, want 1", id, opRow.CurrentLoad)
		}
	}
}

func TestDistribute_ProportionsFollowWeights(t *testing.T) {
	db := newServiceDB(t)
	dist := NewDistributionService(db)
	dist.Picker = weighted.NewSeededPicker(1)
	ctx := context.Background()

	const n = 1000
	heavy, _ := repo.CreateOperator(ctx, db, "Heavy", n)
	light, _ := repo.CreateOperator(ctx, db, "Light", n)
	src, _ := repo.CreateSource(ctx, db, "Telegram", "tg")
	_ = repo.UpsertWeight(ctx, db, heavy.ID, src.ID, 80)
	_ = repo.UpsertWeight(ctx, db, light.ID, src.ID, 20)
	usr, _ := repo.CreateUser(ctx, db, "u-1")

	counts := map[uint]int{}
	for i := 0; i < n; i++ {
		r, _ := repo.CreateRequest(ctx, db, usr.ID, src.ID, "m")
		err := db.Transaction(func(tx *gorm.DB) error {
			opID, derr := dist.Distribute(ctx, tx, r.ID, src.ID)
			if derr == nil && opID != nil {
				counts[*opID]++
			}
			return derr
		})
		if err != nil {
			t.Fatalf("Distribute #%d: %v", i, err)
		}
	}

	if counts[heavy.ID]+counts[light.ID] != n {
		t.Fatalf("all requests must be assigned with ample capacity: %v", counts)
	}
	frac := float64(counts[heavy.ID]) / float64(n)
	if frac < 0.70 || frac > 0.90 {
		t.Fatalf("heavy operator got %.3f of assignments, want ~0.80 (counts: %v)", frac, counts)
	}
}

func TestAvailableOperators_PassThrough(t *testing.T) {
	db := newServiceDB(t)
	dist := NewDistributionService(db)
	ctx := context.Background()

	op, _ := repo.CreateOperator(ctx, db, "Alice", 5)
	src, _ := repo.CreateSource(ctx, db, "Telegram", "tg")
	_ = repo.UpsertWeight(ctx, db, op.ID, src.ID, 30)

	available, err := dist.AvailableOperators(ctx, src.ID)
	if err != nil {
		t.Fatalf("AvailableOperators: %v", err)
	}
	if len(available) != 1 || available[0].Operator.ID != op.ID {
		t.Fatalf("unexpected availability: %+v", available)
	}

	// Unknown source yields an empty list, not an error.
	available, err = dist.AvailableOperators(ctx, 999)
	if err != nil || len(available) != 0 {
		t.Fatalf("expected empty availability for unknown source: %+v err=%v", available, err)
	}
}
