package hash

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSHA256Hasher_HashFile(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := NewSHA256Hasher()

	t.Run("stable for same content", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "forge-plan.prompt.md")
		if err := os.WriteFile(testFile, []byte("# plan"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		hash1, err := hasher.HashFile(testFile)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		hash2, err := hasher.HashFile(testFile)
		if err != nil {
			t.Fatalf("HashFile failed on second call: %v", err)
		}
		if hash1 == "" || hash1 != hash2 {
			t.Errorf("HashFile inconsistent: got %q and %q", hash1, hash2)
		}
	})

	t.Run("known digest", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "empty.md")
		if err := os.WriteFile(testFile, nil, 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		got, err := hasher.HashFile(testFile)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		if got != want {
			t.Errorf("HashFile(empty) = %s, want %s", got, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := hasher.HashFile(filepath.Join(tmpDir, "nope")); err == nil {
			t.Error("HashFile should fail for a missing file")
		}
	})
}

func TestSameContent(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := NewSHA256Hasher()

	a := filepath.Join(tmpDir, "a.md")
	b := filepath.Join(tmpDir, "b.md")
	c := filepath.Join(tmpDir, "c.md")
	for path, content := range map[string]string{a: "same", b: "same", c: "different"} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", a, b, true},
		{"different", a, c, false},
		{"missing target", a, filepath.Join(tmpDir, "absent.md"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SameContent(hasher, tt.a, tt.b)
			if err != nil {
				t.Fatalf("SameContent failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SameContent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFakeHasher(t *testing.T) {
	h := NewFakeHasher()
	h.SetHash("/x", "abc")

	if got, _ := h.HashFile("/x"); got != "abc" {
		t.Errorf("HashFile(/x) = %q, want abc", got)
	}
	if got, _ := h.HashFile("/y"); got == "abc" {
		t.Error("unconfigured paths must not collide with configured digests")
	}

	boom := errors.New("boom")
	h.SetError(boom)
	if _, err := h.HashFile("/x"); !errors.Is(err, boom) {
		t.Errorf("HashFile error = %v, want %v", err, boom)
	}
}
