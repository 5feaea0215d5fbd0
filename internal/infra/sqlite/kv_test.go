package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "progress.db")

	kv, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Write(ctx, map[string]string{"quest_1_answers": `["git version 2.43.0"]`, "total_points": "10"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := kv.Write(ctx, map[string]string{"total_points": "25"}, []string{"total_points"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	v, ok, err := kv.Get(ctx, "total_points")
	if err != nil || !ok || v != "25" {
		t.Fatalf("expected total 25, got v=%q ok=%v err=%v", v, ok, err)
	}
	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}

	if err := kv.Write(ctx, nil, []string{"quest_1_answers", "total_points"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "quest_1_answers"); ok {
		t.Fatalf("expected answers deleted")
	}
}
