// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/config"
	"github.com/l3montree-dev/trivy-bundler/internal/checks"
	"github.com/l3montree-dev/trivy-bundler/internal/platform"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

const (
	defaultConfigFilename = ".trivy-bundler"
)

// DefaultRegistry returns a registry holding every command of the bundler.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("generate-config", newGenerateConfigCommand)
	r.Register("generate-scanner-config", newGenerateScannerConfigCommand)
	r.Register("generate-rules-config", newGenerateRulesConfigCommand)
	r.Register("download-scanners", newDownloadScannersCommand)
	r.Register("clear-scanners", newClearScannersCommand)
	r.Register("upload-scanners", newUploadScannersCommand)
	r.Register("list-platforms", newListPlatformsCommand)
	r.Register("generate-static-data", newGenerateStaticDataCommand)
	r.Register("clear-static-data", newClearStaticDataCommand)
	r.Register("clone-trivy-checks", newCloneTrivyChecksCommand)
	r.Register("extract-rules", newExtractRulesCommand)
	r.Register("version", newVersionCommand)
	return r
}

var RootCmd = NewRootCommand(DefaultRegistry())

func NewRootCommand(registry *Registry) *cobra.Command {
	root := &cobra.Command{
		SilenceUsage:      true,
		Use:               "trivy-bundler",
		Short:             "Bundle the Trivy scanner and its configuration",
		Version:           version,
		DisableAutoGenTag: true,
		Long: `Bundle the Trivy scanner and its configuration

trivy-bundler downloads the Trivy release binaries for every supported platform,
merges the scanner and rule configuration of this repository into a single JSON
document and scrapes the documentation of the trivy-checks repository for static
policy data. Configuration can be provided via a ./.trivy-bundler config file or
environment variables (prefix TRIVY_BUNDLER_).`,
		Example: `  # Print the complete configuration
  trivy-bundler generate-config

  # Download and extract the scanners of all platforms
  trivy-bundler download-scanners --output dist

  # Generate static data from the checks documentation
  trivy-bundler clone-trivy-checks
  trivy-bundler generate-static-data trivy-checks/avd_docs`,

		// positional names which are no subcommand are resolved by the registry
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return registry.Execute(cmd, args[0], args[1:])
		},

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// init the logger - get the level
			level, err := cmd.Flags().GetString("logLevel")
			if err != nil {
				return err
			}

			switch level {
			case "debug":
				initLogger(slog.LevelDebug)
			case "info":
				initLogger(slog.LevelInfo)
			case "warn":
				initLogger(slog.LevelWarn)
			case "error":
				initLogger(slog.LevelError)
			default:
				initLogger(slog.LevelInfo)
			}

			return initializeConfig(cmd)
		},
	}

	root.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	root.PersistentFlags().String("root", ".", "The bundler repository holding scanner_config.yml and rules-config/")
	root.PersistentFlags().StringP("output", "o", config.DefaultOutput, "The directory archives, scanners and static data are written to")
	root.PersistentFlags().Int("timeout", config.DefaultTimeout, "Timeout in seconds for network operations")
	root.PersistentFlags().String("releaseUrl", platform.DefaultReleaseURL, "The base url of the scanner releases")
	root.PersistentFlags().String("checksRepository", checks.DefaultRepository, "The git repository of the checks")
	root.PersistentFlags().String("checksDir", config.DefaultChecksDir, "The directory the checks repository is cloned into")

	registry.AddTo(root)
	return root
}

func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// initLogger installs a tint handler on stderr, so stdout stays free for
// the generated configs.
func initLogger(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	viper.SetConfigName(defaultConfigFilename)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/trivy-bundler/")

	// Attempt to read the config file, gracefully ignoring errors
	// caused by a config file not being found.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix("TRIVY_BUNDLER")
	// Environment variables can't have dashes in them, so bind them to their equivalent
	// keys with underscores
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)

	return config.ParseBaseConfig()
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}

// commandContext derives a context from cmd which is cancelled after the configured timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, config.RuntimeBaseConfig.TimeoutDuration())
}
