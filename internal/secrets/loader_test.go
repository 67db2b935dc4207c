package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  s3cret \n"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if secret != "s3cret" {
		t.Fatalf("unexpected secret: %q", secret)
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	secret, err := Load(Source{Name: "api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("unexpected secret: %q", secret)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptySources(t *testing.T) {
	_, err := Load(Source{Name: "api key"})
	if err == nil {
		t.Fatal("expected error for unconfigured secret")
	}
	if !strings.Contains(err.Error(), "api key") {
		t.Fatalf("expected secret name in error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}
