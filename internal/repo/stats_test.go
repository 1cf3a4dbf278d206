package repo

import (
	"context"
	"testing"
)

func TestDistributionByOperator_GroupsAssignedRequests(t *testing.T) {
	db := newRepoDB(t, requestModels()...)
	ctx := context.Background()
	userID, sourceID := seedRequestDeps(t, db)

	alice, _ := CreateOperator(ctx, db, "Alice", 10)
	bob, _ := CreateOperator(ctx, db, "Bob", 10)

	assign := func(opID uint, n int) {
		for i := 0; i < n; i++ {
			r, err := CreateRequest(ctx, db, userID, sourceID, "m")
			if err != nil {
				t.Fatalf("CreateRequest: %v", err)
			}
			if err := AssignRequest(ctx, db, r.ID, opID); err != nil {
				t.Fatalf("AssignRequest: %v", err)
			}
		}
	}
	assign(alice.ID, 3)
	assign(bob.ID, 1)
	// One unassigned request.
	if _, err := CreateRequest(ctx, db, userID, sourceID, "m"); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	rows, err := DistributionByOperator(ctx, db)
	if err != nil {
		t.Fatalf("DistributionByOperator: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.OperatorName] = row.RequestCount
	}
	if counts["Alice"] != 3 || counts["Bob"] != 1 {
		t.Fatalf("unexpected per-operator counts: %+v", counts)
	}
	if len(rows) != 2 {
		t.Fatalf("unassigned requests must not appear in the operator breakdown: %+v", rows)
	}
}

func TestDistributionBySource_CountsAllStatuses(t *testing.T) {
	db := newRepoDB(t, requestModels()...)
	ctx := context.Background()
	userID, sourceID := seedRequestDeps(t, db)

	other, _ := CreateSource(ctx, db, "Email", "email")

	for i := 0; i < 2; i++ {
		if _, err := CreateRequest(ctx, db, userID, sourceID, "m"); err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
	}
	if _, err := CreateRequest(ctx, db, userID, other.ID, "m"); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	rows, err := DistributionBySource(ctx, db)
	if err != nil {
		t.Fatalf("DistributionBySource: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.SourceName] = row.RequestCount
	}
	if counts["Telegram"] != 2 || counts["Email"] != 1 {
		t.Fatalf("unexpected per-source counts: %+v", counts)
	}
}

func TestCountUnassignedRequests(t *testing.T) {
	db := newRepoDB(t, requestModels()...)
	ctx := context.Background()
	userID, sourceID := seedRequestDeps(t, db)

	op, _ := CreateOperator(ctx, db, "Alice", 10)

	r1, _ := CreateRequest(ctx, db, userID, sourceID, "m")
	_, _ = CreateRequest(ctx, db, userID, sourceID, "m")
	r3, _ := CreateRequest(ctx, db, userID, sourceID, "m")

	_ = AssignRequest(ctx, db, r1.ID, op.ID)
	_ = MarkRequestWaiting(ctx, db, r3.ID)

	n, err := CountUnassignedRequests(ctx, db)
	if err != nil {
		t.Fatalf("CountUnassignedRequests: %v", err)
	}
	// Pending and waiting both count; assigned does not.
	if n != 2 {
		t.Fatalf("expected 2 unassigned, got %d", n)
	}
}
