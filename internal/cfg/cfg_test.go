package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"playlistfy/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newTestCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{Use: "playlistfy"}
	setFlags(v, cmd)
	return cmd
}

// TestResolveDefaults checks every recognized option has a value with no
// other layers present.
func TestResolveDefaults(t *testing.T) {
	v := viper.New()
	resolve(v, "", "")

	if got := v.GetString(keys.OutputDir); got != "downloads" {
		t.Fatalf("expected default output_dir 'downloads', got %q", got)
	}
	if got := v.GetInt(keys.ParallelWorkers); got != 3 {
		t.Fatalf("expected default parallel_workers 3, got %d", got)
	}
	if got := v.GetInt(keys.MaxRetries); got != 3 {
		t.Fatalf("expected default max_retries 3, got %d", got)
	}
	if !v.GetBool(keys.AskQuality) {
		t.Fatal("expected ask_quality default true")
	}
	if !v.GetBool(keys.UseParallel) {
		t.Fatal("expected use_parallel default true")
	}

	s := buildSettings(v)
	if s.Quality != "best" || s.Theme != "dark" || s.PreferFormat != "mp4" {
		t.Fatalf("unexpected settings snapshot: %+v", s)
	}
	if s.BackoffCeiling != 120*time.Second {
		t.Fatalf("expected default backoff ceiling 120s, got %v", s.BackoffCeiling)
	}
}

// TestResolvePrecedence checks pairwise that each layer overrides the one
// below it: default < global file < project file < env < flag.
func TestResolvePrecedence(t *testing.T) {
	tmp := t.TempDir()

	globalPath := writeFile(t, tmp, "config.json", `{"quality": "480p", "output_dir": "global-dir", "parallel_workers": 5, "theme": "light"}`)
	projectPath := writeFile(t, tmp, "playlistfy.json", `{"quality": "720p", "output_dir": "project-dir"}`)

	t.Setenv("PLAYLISTFY_OUTPUT_DIR", "env-dir")
	t.Setenv("PLAYLISTFY_MAX_RETRIES", "4")

	v := viper.New()
	cmd := newTestCmd(v)
	if err := cmd.Flags().Set("output-dir", "flag-dir"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	resolve(v, globalPath, projectPath)

	// Global file beats default.
	if got := v.GetString(keys.Theme); got != "light" {
		t.Errorf("global file should beat default: theme = %q", got)
	}
	if got := v.GetInt(keys.ParallelWorkers); got != 5 {
		t.Errorf("global file should beat default: parallel_workers = %d", got)
	}

	// Project file beats global file.
	if got := v.GetString(keys.Quality); got != "720p" {
		t.Errorf("project file should beat global file: quality = %q", got)
	}

	// Env beats both files.
	if got := v.GetInt(keys.MaxRetries); got != 4 {
		t.Errorf("env should beat default: max_retries = %d", got)
	}

	// Flag beats everything, including the env var set for the same key.
	if got := v.GetString(keys.OutputDir); got != "flag-dir" {
		t.Errorf("flag should beat env and files: output_dir = %q", got)
	}
}

// TestResolveMalformedFiles checks a broken optional layer is skipped
// without failing resolution.
func TestResolveMalformedFiles(t *testing.T) {
	tmp := t.TempDir()

	globalPath := writeFile(t, tmp, "config.json", `{"quality": "1080p"}`)
	projectPath := writeFile(t, tmp, "playlistfy.json", `{not valid json!!`)

	v := viper.New()
	resolve(v, globalPath, projectPath)

	// Malformed project layer skipped, global layer still applies.
	if got := v.GetString(keys.Quality); got != "1080p" {
		t.Fatalf("expected global quality to survive malformed project file, got %q", got)
	}
	if got := v.GetString(keys.OutputDir); got != "downloads" {
		t.Fatalf("expected default output_dir, got %q", got)
	}
}

func TestResolveMissingFiles(t *testing.T) {
	tmp := t.TempDir()

	v := viper.New()
	resolve(v, filepath.Join(tmp, "nope.json"), filepath.Join(tmp, "missing.json"))

	if got := v.GetString(keys.Quality); got != "best" {
		t.Fatalf("expected defaults with no config files, got quality %q", got)
	}
}

// TestEnvCoercion checks values failing type coercion are treated as
// absent for the environment layer.
func TestEnvCoercion(t *testing.T) {
	t.Setenv("PLAYLISTFY_PARALLEL_WORKERS", "not-a-number")
	t.Setenv("PLAYLISTFY_USE_PARALLEL", "maybe")
	t.Setenv("PLAYLISTFY_MAX_RETRIES", "2")

	v := viper.New()
	resolve(v, "", "")

	if got := v.GetInt(keys.ParallelWorkers); got != 3 {
		t.Errorf("bad int env value should fall through to default, got %d", got)
	}
	if got := v.GetBool(keys.UseParallel); got != true {
		t.Errorf("bad bool env value should fall through to default, got %v", got)
	}
	if got := v.GetInt(keys.MaxRetries); got != 2 {
		t.Errorf("valid env value should apply, got %d", got)
	}
}

func TestValidateClamps(t *testing.T) {
	v := viper.New()
	resolve(v, "", "")

	v.Set(keys.ParallelWorkers, 50)
	v.Set(keys.Quality, "4320p")
	v.Set(keys.Theme, "solarized")

	if err := validate(v); err != nil {
		t.Fatalf("validate should clamp, not fail: %v", err)
	}
	if got := v.GetInt(keys.ParallelWorkers); got != 10 {
		t.Errorf("expected workers clamped to 10, got %d", got)
	}
	if got := v.GetString(keys.Quality); got != "best" {
		t.Errorf("expected quality reset to best, got %q", got)
	}
	if got := v.GetString(keys.Theme); got != "dark" {
		t.Errorf("expected theme reset to dark, got %q", got)
	}
}

func TestValidateCookieSource(t *testing.T) {
	v := viper.New()
	resolve(v, "", "")

	v.Set(keys.CookieSource, "netscape-navigator")
	if err := validate(v); err == nil {
		t.Fatal("expected error for unsupported cookie source")
	}

	v.Set(keys.CookieSource, "firefox")
	if err := validate(v); err != nil {
		t.Fatalf("expected firefox to be accepted: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmp := t.TempDir()

	v := viper.New()
	resolve(v, "", "")
	s := buildSettings(v)
	s.Quality = "720p"
	s.AskQuality = false

	path := filepath.Join(tmp, "config.json")
	if err := saveTo(s, path); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	v2 := viper.New()
	resolve(v2, path, "")
	s2 := buildSettings(v2)

	if s2.Quality != "720p" {
		t.Errorf("expected saved quality to load back, got %q", s2.Quality)
	}
	if s2.AskQuality {
		t.Error("expected saved ask_quality=false to load back")
	}
	if s2.BackoffCeiling != s.BackoffCeiling {
		t.Errorf("expected backoff ceiling round trip, got %v", s2.BackoffCeiling)
	}
}
