package attach

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeTempFile drops a file into the test's temp dir.
func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestStageAcceptsValidFiles(t *testing.T) {
	paths := []string{
		writeTempFile(t, "a.png", 10),
		writeTempFile(t, "b.pdf", 20),
		writeTempFile(t, "c.jpg", 30),
	}

	p := NewPipeline()
	defer p.Clear()

	staged, rejected, err := p.Stage(paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rejected) != 0 {
		t.Errorf("expected no rejections, got %v", rejected)
	}
	if len(staged) != 3 {
		t.Fatalf("expected 3 staged files, got %d", len(staged))
	}

	for _, f := range staged {
		if f.Preview == nil {
			t.Fatalf("staged file %s has no preview handle", f.Name)
		}
		if _, err := os.Stat(f.Preview.Path()); err != nil {
			t.Errorf("preview for %s not on disk: %v", f.Name, err)
		}
	}
}

func TestStageRejections(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		size       int
		wantReject bool
	}{
		{name: "unsupported type", file: "script.sh", size: 10, wantReject: true},
		{name: "oversize file", file: "huge.png", size: MaxFileSize + 1, wantReject: true},
		{name: "pdf at limit", file: "ok.pdf", size: 100, wantReject: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline()
			defer p.Clear()

			staged, rejected, err := p.Stage([]string{writeTempFile(t, tt.file, tt.size)})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantReject {
				if len(rejected) != 1 {
					t.Fatalf("expected 1 rejection, got %d", len(rejected))
				}
				if rejected[0].Name != tt.file {
					t.Errorf("expected rejection of %s, got %s", tt.file, rejected[0].Name)
				}
				if len(staged) != 0 {
					t.Errorf("rejected file must not be staged")
				}
				return
			}

			if len(rejected) != 0 {
				t.Errorf("unexpected rejections: %v", rejected)
			}
			if len(staged) != 1 {
				t.Errorf("expected 1 staged file, got %d", len(staged))
			}
		})
	}
}

func TestClearReleasesAllPreviews(t *testing.T) {
	p := NewPipeline()
	staged, _, err := p.Stage([]string{
		writeTempFile(t, "a.png", 10),
		writeTempFile(t, "b.png", 10),
		writeTempFile(t, "c.png", 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Clear()

	released := 0
	for _, f := range staged {
		if f.Preview.Released() {
			released++
		}
		if _, err := os.Stat(f.Preview.Path()); !os.IsNotExist(err) {
			t.Errorf("preview for %s still on disk after clear", f.Name)
		}
	}
	if released != 3 {
		t.Errorf("expected exactly 3 previews released, got %d", released)
	}
	if len(p.Staged()) != 0 {
		t.Error("expected empty staged set after clear")
	}
}

func TestRestageReleasesPreviousSet(t *testing.T) {
	p := NewPipeline()
	defer p.Clear()

	first, _, err := p.Stage([]string{writeTempFile(t, "old.png", 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := p.Stage([]string{writeTempFile(t, "new.png", 10)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first[0].Preview.Released() {
		t.Error("replacing the staged set must release the previous previews")
	}
	if len(p.Staged()) != 1 || p.Staged()[0].Name != "new.png" {
		t.Errorf("unexpected staged set %v", p.Staged())
	}
}

func TestUnstage(t *testing.T) {
	p := NewPipeline()
	defer p.Clear()

	staged, _, err := p.Stage([]string{
		writeTempFile(t, "keep.png", 10),
		writeTempFile(t, "drop.png", 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.Unstage("drop.png")

	if len(p.Staged()) != 1 || p.Staged()[0].Name != "keep.png" {
		t.Errorf("unexpected staged set after unstage")
	}
	for _, f := range staged {
		if f.Name == "drop.png" && !f.Preview.Released() {
			t.Error("unstage must release the file's preview")
		}
		if f.Name == "keep.png" && f.Preview.Released() {
			t.Error("unstage must not release other previews")
		}
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := NewPipeline()
	staged, _, err := p.Stage([]string{writeTempFile(t, "a.png", 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	preview := staged[0].Preview
	preview.Release()
	preview.Release() // second release is a no-op

	if !preview.Released() {
		t.Error("expected preview released")
	}
	p.Clear() // releasing through clear after manual release must not panic
}

func TestParts(t *testing.T) {
	p := NewPipeline()
	defer p.Clear()

	if _, _, err := p.Stage([]string{writeTempFile(t, "a.png", 5)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := p.Parts()
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].Name != "a.png" {
		t.Errorf("expected part name a.png, got %q", parts[0].Name)
	}
	if len(parts[0].Data) != 5 {
		t.Errorf("expected 5 bytes, got %d", len(parts[0].Data))
	}
}
