package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mash-project/hspace/internal/heuristic"
)

func TestReadAll_MissingFile(t *testing.T) {
	hs, err := ReadAll(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(hs) != 0 {
		t.Errorf("ReadAll() = %v, want empty", hs)
	}
}

func TestAppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.jsonl")

	entries := []heuristic.Heuristic{
		{Name: "alice/haar", Author: "alice", Public: true},
		{Name: "bob/sift", Author: "bob", Description: "keypoints"},
	}
	for _, h := range entries {
		if err := Append(path, h); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadAll() returned %d entries, want 2", len(got))
	}
	if got[0] != entries[0] || got[1] != entries[1] {
		t.Errorf("ReadAll() = %+v, want %+v", got, entries)
	}
}

func TestReadAll_SkipsEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.jsonl")
	content := `{"name":"alice/haar","author":"alice","public":true}

{"name":"bob/sift","author":"bob","public":false}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ReadAll() returned %d entries, want 2", len(got))
	}
}

func TestReadAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed JSON", "{not json}\n"},
		{"invalid name", `{"name":"Alice","author":"alice"}` + "\n"},
		{"author mismatch", `{"name":"alice/haar","author":"bob"}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "heuristics.jsonl")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := ReadAll(path); err == nil {
				t.Error("ReadAll() succeeded, want error")
			}
		})
	}
}

func TestWriteAll_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heuristics.jsonl")
	if err := Append(path, heuristic.Heuristic{Name: "old/one", Author: "old"}); err != nil {
		t.Fatal(err)
	}

	if err := WriteAll(path, []heuristic.Heuristic{{Name: "new/one", Author: "new"}}); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "new/one" {
		t.Errorf("ReadAll() after WriteAll = %+v", got)
	}
}

func TestUpsert(t *testing.T) {
	hs := []heuristic.Heuristic{{Name: "alice/haar", Author: "alice"}}

	hs, replaced := Upsert(hs, heuristic.Heuristic{Name: "alice/haar", Author: "alice", Public: true})
	if !replaced || len(hs) != 1 || !hs[0].Public {
		t.Errorf("Upsert(existing) = %+v, replaced=%v", hs, replaced)
	}

	hs, replaced = Upsert(hs, heuristic.Heuristic{Name: "bob/sift", Author: "bob"})
	if replaced || len(hs) != 2 {
		t.Errorf("Upsert(new) = %+v, replaced=%v", hs, replaced)
	}

	if idx, found := FindByName(hs, "bob/sift"); !found || idx != 1 {
		t.Errorf("FindByName() = %d, %v", idx, found)
	}
}
