// Package cfg provides configuration and command-line interface setup for
// playlistfy. Settings resolve in fixed precedence order: code defaults,
// then the global config file, the project config file, environment
// variables, and finally CLI flags.
package cfg

import (
	"os"
	"path/filepath"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/domain/keys"
	"playlistfy/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "playlistfy [url]",
	Short: "playlistfy downloads YouTube videos and playlists via yt-dlp.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("help").Changed {
			return nil // Stop further execution if help is invoked
		}

		globalPath, projectPath := configPaths()
		resolve(viper.GetViper(), globalPath, projectPath)

		if err := validate(viper.GetViper()); err != nil {
			return err
		}

		if len(args) == 1 {
			viper.Set("url", args[0])
		}
		viper.Set("execute", true)
		return nil
	},
}

// init sets up flags before cobra parses the command line.
func init() {
	setFlags(viper.GetViper(), rootCmd)
}

// Execute parses the command line and resolves the effective configuration
// into the global viper instance.
func Execute() error {
	return rootCmd.Execute()
}

// IsSet checks if a key is set in the resolved configuration.
func IsSet(key string) bool {
	return viper.IsSet(key)
}

// GetString retrieves a resolved string value.
func GetString(key string) string {
	return viper.GetString(key)
}

// resolve folds the layered configuration sources into v. Flags are bound
// at init time and always win; viper keeps the precedence order
// flag > env > config file > default internally.
func resolve(v *viper.Viper, globalPath, projectPath string) {
	setDefaults(v)
	loadConfigFiles(v, globalPath, projectPath)
	bindEnv(v)
}

// configPaths returns the global and project config file locations.
func configPaths() (globalPath, projectPath string) {
	if home, err := os.UserHomeDir(); err == nil {
		globalPath = filepath.Join(home, consts.ConfigDirName, consts.ConfigFile)
	} else {
		logging.W("Could not determine home directory, skipping global config: %v", err)
	}

	if cwd, err := os.Getwd(); err == nil {
		projectPath = filepath.Join(cwd, consts.ProjectFile)
	}
	return globalPath, projectPath
}

// GlobalConfigDir returns the per-user playlistfy directory, creating it
// if needed.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, consts.ConfigDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DebugLevel returns the resolved debug verbosity.
func DebugLevel() int {
	return viper.GetInt(keys.DebugLevel)
}
