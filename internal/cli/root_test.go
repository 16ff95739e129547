package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packdiff/pkg/errors"
)

// writePack writes a modpack export containing manifest as manifest.json.
func writePack(t *testing.T, dir, name, manifest string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("manifest.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, manifest); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

const (
	oldManifest = `{
  "name": "Pack", "version": "1.0",
  "minecraft": {"version": "1.20.1", "modLoaders": [{"id": "forge-47.2.0", "primary": true}]},
  "files": [
    {"projectID": 1, "fileID": 10, "required": true},
    {"projectID": 2, "fileID": 20, "required": true}
  ]
}`
	newManifest = `{
  "name": "Pack", "version": "1.1",
  "minecraft": {"version": "1.20.1", "modLoaders": [{"id": "forge-47.2.0", "primary": true}]},
  "files": [
    {"projectID": 1, "fileID": 11, "required": true},
    {"projectID": 3, "fileID": 30, "required": false}
  ]
}`
)

// execute runs the root command with args inside an isolated directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	captureOutput(t)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestDiffCommand_WritesReport(t *testing.T) {
	dir := t.TempDir()
	oldZip := writePack(t, dir, "old.zip", oldManifest)
	newZip := writePack(t, dir, "new.zip", newManifest)
	outPath := filepath.Join(dir, "reports", "diff.md")

	if _, err := execute(t, "diff", oldZip, newZip, "-o", outPath); err != nil {
		t.Fatalf("diff error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	report := string(data)
	for _, want := range []string{
		"Comparing Pack v1.0 to Pack v1.1",
		"## Additions", "| 3 | 30 | false |",
		"## Removals", "| 2 | 20 | true |",
		"## Updates", "| 1 | 10 | 11 |",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
	if strings.Contains(report, "## Minecraft Version Change") {
		t.Error("unchanged game version should not be reported")
	}
}

func TestDiffCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writePack(t, dir, "good.zip", oldManifest)
	noFiles := writePack(t, dir, "nofiles.zip", `{"name": "x"}`)
	notZip := filepath.Join(dir, "bad.zip")
	if err := os.WriteFile(notZip, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing archive", []string{"diff", good, filepath.Join(dir, "missing.zip")}, errors.ErrCodeFileNotFound},
		{"not a zip", []string{"diff", notZip, good}, errors.ErrCodeInvalidArchive},
		{"no files list", []string{"diff", good, noFiles}, errors.ErrCodeInvalidManifest},
		{"bad workers", []string{"diff", good, good, "--workers", "0"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
			if !errors.IsInput(err) {
				t.Errorf("IsInput(%v) = false", err)
			}
		})
	}
}

func TestDiffCommand_RequiresTwoArgs(t *testing.T) {
	if _, err := execute(t, "diff", "only.zip"); err == nil {
		t.Error("expected an argument error")
	}
}

func TestRootCommand_ConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "packdiff.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \"from-file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "cache", "path", "--config", cfgPath)
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), "from-file") {
		t.Errorf("cache path = %q, want the config file's dir", stdout)
	}

	stdout, err = execute(t, "cache", "path", "--config", cfgPath, "--cache-dir", "from-flag")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(stdout), "from-flag") {
		t.Errorf("cache path = %q, want the flag's dir", stdout)
	}
}

func TestRootCommand_Version(t *testing.T) {
	stdout, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.Contains(stdout, appName) {
		t.Errorf("version output = %q", stdout)
	}
}
