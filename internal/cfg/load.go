package cfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"playlistfy/internal/domain/keys"
	"playlistfy/internal/logging"

	"github.com/spf13/viper"
)

const envPrefix = "PLAYLISTFY"

// Declared option types, used for environment variable coercion.
var (
	stringKeys = []string{
		keys.OutputDir, keys.Quality, keys.Theme, keys.CookieSource,
		keys.PreferFormat, keys.RateLimit, keys.ArchiveDB, keys.BackoffCeiling,
	}
	intKeys = []string{
		keys.ParallelWorkers, keys.MaxRetries, keys.DebugLevel,
	}
	boolKeys = []string{
		keys.UseParallel, keys.AskQuality, keys.AskDownloadDir,
		keys.AskParallelMode, keys.AskNumWorkers,
	}
)

// setDefaults seeds the lowest-precedence layer. Every recognized option
// has a value after this, so resolution can never come up empty.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keys.OutputDir, "downloads")
	v.SetDefault(keys.Quality, "best")
	v.SetDefault(keys.ParallelWorkers, 3)
	v.SetDefault(keys.MaxRetries, 3)
	v.SetDefault(keys.Theme, "dark")
	v.SetDefault(keys.CookieSource, "")
	v.SetDefault(keys.PreferFormat, "mp4")
	v.SetDefault(keys.RateLimit, "")
	v.SetDefault(keys.ArchiveDB, "")
	v.SetDefault(keys.BackoffCeiling, (120 * time.Second).String())
	v.SetDefault(keys.UseParallel, true)
	v.SetDefault(keys.AskQuality, true)
	v.SetDefault(keys.AskDownloadDir, true)
	v.SetDefault(keys.AskParallelMode, true)
	v.SetDefault(keys.AskNumWorkers, true)
	v.SetDefault(keys.DebugLevel, 0)
}

// loadConfigFiles reads the global config file and merges the project file
// over it. Both layers are optional: a missing or malformed file is logged
// and skipped, and resolution continues with lower layers.
func loadConfigFiles(v *viper.Viper, globalPath, projectPath string) {
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			v.SetConfigFile(globalPath)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				logging.W("Skipping global config %q: %v", globalPath, err)
			} else {
				logging.D(1, "Loaded global config from %q", globalPath)
			}
		}
	}

	if projectPath != "" {
		if _, err := os.Stat(projectPath); err == nil {
			v.SetConfigFile(projectPath)
			v.SetConfigType("json")
			if err := v.MergeInConfig(); err != nil {
				logging.W("Skipping project config %q: %v", projectPath, err)
			} else {
				logging.D(1, "Merged project config from %q", projectPath)
			}
		}
	}
}

// bindEnv binds each recognized key to its PLAYLISTFY_ environment
// variable. Typed keys whose env value fails coercion are not bound, so
// the value from the file layers (or the default) stays in effect.
func bindEnv(v *viper.Viper) {
	for _, key := range stringKeys {
		mustBindEnv(v, key)
	}

	for _, key := range intKeys {
		if val, ok := os.LookupEnv(envName(key)); ok {
			if _, err := strconv.Atoi(val); err != nil {
				logging.W("Ignoring %s=%q: not an integer", envName(key), val)
				continue
			}
		}
		mustBindEnv(v, key)
	}

	for _, key := range boolKeys {
		if val, ok := os.LookupEnv(envName(key)); ok {
			if _, err := strconv.ParseBool(val); err != nil {
				logging.W("Ignoring %s=%q: not a boolean", envName(key), val)
				continue
			}
		}
		mustBindEnv(v, key)
	}
}

func mustBindEnv(v *viper.Viper, key string) {
	if err := v.BindEnv(key, envName(key)); err != nil {
		logging.E("Failed to bind environment variable for key %q: %v", key, err)
	}
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(key)
}
