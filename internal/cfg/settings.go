package cfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/domain/keys"
	"playlistfy/internal/models"

	"github.com/spf13/viper"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// Settings builds an immutable snapshot of the resolved configuration.
// The rest of the program receives this value and never reads viper again.
func Settings() *models.Settings {
	return buildSettings(viper.GetViper())
}

func buildSettings(v *viper.Viper) *models.Settings {
	s := &models.Settings{
		OutputDir:       v.GetString(keys.OutputDir),
		Quality:         v.GetString(keys.Quality),
		ParallelWorkers: v.GetInt(keys.ParallelWorkers),
		MaxRetries:      v.GetInt(keys.MaxRetries),
		Theme:           v.GetString(keys.Theme),
		CookieSource:    v.GetString(keys.CookieSource),
		PreferFormat:    v.GetString(keys.PreferFormat),
		RateLimit:       v.GetString(keys.RateLimit),
		ArchiveDB:       v.GetString(keys.ArchiveDB),
		UseParallel:     v.GetBool(keys.UseParallel),
		AskQuality:      v.GetBool(keys.AskQuality),
		AskDownloadDir:  v.GetBool(keys.AskDownloadDir),
		AskParallelMode: v.GetBool(keys.AskParallelMode),
		AskNumWorkers:   v.GetBool(keys.AskNumWorkers),
		Debug:           v.GetInt(keys.DebugLevel),
	}

	s.BackoffCeiling = 120 * time.Second
	if raw := v.GetString(keys.BackoffCeiling); raw != "" {
		if d, err := str2duration.ParseDuration(raw); err == nil {
			s.BackoffCeiling = d
		}
	}

	if s.ArchiveDB == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.ArchiveDB = filepath.Join(home, consts.ConfigDirName, consts.DBFile)
		}
	}

	return s
}

// SaveGlobal persists the settings snapshot to the global config file.
// Only persistable keys are written; runtime-only values (debug level,
// parsed durations) stay out of the file.
func SaveGlobal(s *models.Settings) error {
	dir, err := GlobalConfigDir()
	if err != nil {
		return fmt.Errorf("failed to locate config directory: %w", err)
	}
	return saveTo(s, filepath.Join(dir, consts.ConfigFile))
}

func saveTo(s *models.Settings, path string) error {
	payload := map[string]any{
		keys.OutputDir:       s.OutputDir,
		keys.Quality:         s.Quality,
		keys.ParallelWorkers: s.ParallelWorkers,
		keys.MaxRetries:      s.MaxRetries,
		keys.Theme:           s.Theme,
		keys.CookieSource:    s.CookieSource,
		keys.PreferFormat:    s.PreferFormat,
		keys.RateLimit:       s.RateLimit,
		keys.BackoffCeiling:  s.BackoffCeiling.String(),
		keys.UseParallel:     s.UseParallel,
		keys.AskQuality:      s.AskQuality,
		keys.AskDownloadDir:  s.AskDownloadDir,
		keys.AskParallelMode: s.AskParallelMode,
		keys.AskNumWorkers:   s.AskNumWorkers,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings to %q: %w", path, err)
	}
	return nil
}
