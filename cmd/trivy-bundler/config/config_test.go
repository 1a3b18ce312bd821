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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		viper.Reset()
		viper.Set("releaseUrl", "https://github.com/aquasecurity/trivy/releases/download/")
		viper.Set("checksRepository", "https://github.com/aquasecurity/trivy-checks.git")

		require.NoError(t, ParseBaseConfig())
		assert.Equal(t, ".", RuntimeBaseConfig.Root)
		assert.Equal(t, "output", RuntimeBaseConfig.Output)
		assert.Equal(t, "trivy-checks", RuntimeBaseConfig.ChecksDir)
		assert.Equal(t, 300*time.Second, RuntimeBaseConfig.TimeoutDuration())
		assert.Equal(t, "https://github.com/aquasecurity/trivy/releases/download", RuntimeBaseConfig.ReleaseURL)
		assert.Equal(t, filepath.Join(".", "scanner_config.yml"), RuntimeBaseConfig.ScannerConfigPath())
		assert.Equal(t, filepath.Join(".", "rules-config"), RuntimeBaseConfig.RulesConfigPath())
	})

	t.Run("should read values from the environment", func(t *testing.T) {
		viper.Reset()
		viper.SetEnvPrefix("TRIVY_BUNDLER")
		viper.AutomaticEnv()
		require.NoError(t, viper.BindEnv("output"))
		t.Setenv("TRIVY_BUNDLER_OUTPUT", "dist")
		viper.Set("releaseUrl", "mirror.example.com")
		viper.Set("checksRepository", "https://github.com/aquasecurity/trivy-checks.git")

		require.NoError(t, ParseBaseConfig())
		assert.Equal(t, "dist", RuntimeBaseConfig.Output)
		assert.Equal(t, "https://mirror.example.com", RuntimeBaseConfig.ReleaseURL)
	})

	t.Run("should reject an invalid log level", func(t *testing.T) {
		viper.Reset()
		viper.Set("releaseUrl", "https://github.com")
		viper.Set("checksRepository", "https://github.com/aquasecurity/trivy-checks.git")
		viper.Set("logLevel", "verbose")

		assert.Error(t, ParseBaseConfig())
	})

	t.Run("should reject a missing release url", func(t *testing.T) {
		viper.Reset()
		viper.Set("checksRepository", "https://github.com/aquasecurity/trivy-checks.git")

		assert.Error(t, ParseBaseConfig())
	})
}

func TestParseUploadConfig(t *testing.T) {
	t.Run("should require a bucket", func(t *testing.T) {
		viper.Reset()
		assert.Error(t, ParseUploadConfig())
	})

	t.Run("should sanitize the endpoint", func(t *testing.T) {
		viper.Reset()
		viper.Set("bucket", "scanners")
		viper.Set("endpoint", "minio.local:9000/")

		require.NoError(t, ParseUploadConfig())
		assert.Equal(t, "https://minio.local:9000", RuntimeUploadConfig.Endpoint)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("should be fine without a .env file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		assert.NoError(t, LoadDotEnv())
	})

	t.Run("should load the .env file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TRIVY_BUNDLER_TEST_VALUE=42\n"), 0o600))
		t.Chdir(dir)
		t.Setenv("TRIVY_BUNDLER_TEST_VALUE", "")
		require.NoError(t, os.Unsetenv("TRIVY_BUNDLER_TEST_VALUE"))

		require.NoError(t, LoadDotEnv())
		assert.Equal(t, "42", os.Getenv("TRIVY_BUNDLER_TEST_VALUE"))
	})
}
