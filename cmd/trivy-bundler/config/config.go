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


package config

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultOutput    = "output"
	DefaultTimeout   = 300
	DefaultChecksDir = "trivy-checks"
)

type baseConfig struct {
	Root     string `json:"root" mapstructure:"root" validate:"required"`
	Output   string `json:"output" mapstructure:"output" validate:"required"`
	Timeout  int    `json:"timeout" mapstructure:"timeout" validate:"gte=0"`
	LogLevel string `json:"logLevel" mapstructure:"logLevel" validate:"omitempty,oneof=debug info warn error"`

	ReleaseURL       string `json:"releaseUrl" mapstructure:"releaseUrl" validate:"required,url"`
	ChecksRepository string `json:"checksRepository" mapstructure:"checksRepository" validate:"required"`
	ChecksDir        string `json:"checksDir" mapstructure:"checksDir" validate:"required"`
}

// UploadConfig configures the upload-scanners command.
type UploadConfig struct {
	Bucket   string `mapstructure:"bucket" validate:"required"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	Profile  string `mapstructure:"profile"`
}

var RuntimeBaseConfig baseConfig
var RuntimeUploadConfig UploadConfig

var V = validator.New()

// LoadDotEnv loads a .env file from the working directory if there is one.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no .env file found")
			return nil
		}
		return errors.Wrap(err, "could not load .env file")
	}
	return nil
}

func ParseBaseConfig() error {
	var cfg baseConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "could not parse config")
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.ChecksDir == "" {
		cfg.ChecksDir = DefaultChecksDir
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.ReleaseURL = sanitizeURL(cfg.ReleaseURL)

	if err := isValidPath(cfg.Output); err != nil {
		return errors.Wrap(err, "invalid output directory")
	}

	if err := V.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	RuntimeBaseConfig = cfg
	return nil
}

func ParseUploadConfig() error {
	var cfg UploadConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "could not parse upload config")
	}
	cfg.Endpoint = sanitizeURL(cfg.Endpoint)

	if err := V.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid upload config")
	}

	RuntimeUploadConfig = cfg
	return nil
}

func (c baseConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c baseConfig) ScannerConfigPath() string {
	return filepath.Join(c.Root, "scanner_config.yml")
}

func (c baseConfig) RulesConfigPath() string {
	return filepath.Join(c.Root, "rules-config")
}
