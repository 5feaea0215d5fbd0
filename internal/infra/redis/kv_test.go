package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"quest-client/internal/domain"
	"quest-client/internal/store"
)

func TestKVSetsAndClearsPrefixedKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	kv := NewKV(newClient(mr), "qc:")

	if err := kv.Write(ctx, map[string]string{"total_points": "40"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := mr.Get("qc:total_points"); got != "40" {
		t.Fatalf("expected prefixed key set, got %q", got)
	}

	v, ok, err := kv.Get(ctx, "total_points")
	if err != nil || !ok || v != "40" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := kv.Write(ctx, nil, []string{"total_points"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("qc:total_points") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestKVBacksProgressStoreReset(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	quests := []domain.Quest{{ID: 1, Multiplicity: 1}, {ID: 6, Multiplicity: 3}}
	ps := store.NewProgressStore(NewKV(newClient(mr), ""))

	if err := ps.SaveAnswer(ctx, 6, 2, "proof.bin"); err != nil {
		t.Fatalf("save answer: %v", err)
	}
	total := 40
	round := domain.Round{
		Statuses: map[int]domain.QuestStatus{
			1: {QuestID: 1, State: domain.StateCompleted, Points: 10},
			6: {QuestID: 6, State: domain.StatePartial, Points: 5, Message: "1 of 3 subquestions proved",
				SubVerdicts: []domain.Verdict{domain.VerdictCorrect, domain.VerdictIncorrect, domain.VerdictUnknown}},
		},
		Score: domain.ScoreUpdate{Total: total, Changed: true, InvalidateProof: true},
	}
	if err := ps.CommitRound(ctx, quests, round); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got, _ := mr.Get("quest_6_sub_1_correct"); got != "true" {
		t.Fatalf("expected sub 1 correct, got %q", got)
	}

	if err := ps.Reset(ctx, quests); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected empty database after reset, got %v", keys)
	}
}
