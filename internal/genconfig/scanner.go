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


package genconfig

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/l3montree-dev/trivy-bundler/internal/content"
	"github.com/l3montree-dev/trivy-bundler/internal/platform"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

var (
	ErrInvalidDownloadLink = errors.New("invalid download link")
	ErrInvalidVersion      = errors.New("invalid scanner version")
)

type ScannerConfigGenerator struct {
	// Path of scanner_config.yml
	Path    string
	BaseURL string
	Client  *http.Client
}

func NewScannerConfigGenerator(path string) *ScannerConfigGenerator {
	return &ScannerConfigGenerator{
		Path:    path,
		BaseURL: platform.DefaultReleaseURL,
		Client:  http.DefaultClient,
	}
}

func (g *ScannerConfigGenerator) read() (*ScannersConfig, error) {
	var cfg ScannersConfig
	if err := content.ReadInto(g.Path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ScannerVersion returns the pinned scanner version of the iac category.
func (g *ScannerConfigGenerator) ScannerVersion() (string, error) {
	cfg, err := g.read()
	if err != nil {
		return "", err
	}
	return g.scannerVersion(cfg)
}

// scannerVersion requires a semantic version, with or without a leading "v".
func (g *ScannerConfigGenerator) scannerVersion(cfg *ScannersConfig) (string, error) {
	version := cfg.IaC.ScannerVersion
	if version == "" {
		return "", fmt.Errorf("%s: %s.scanner_version is not set", g.Path, CategoryIaC)
	}
	if !semver.IsValid("v" + strings.TrimPrefix(version, "v")) {
		return "", fmt.Errorf("%w: %q in %s", ErrInvalidVersion, version, g.Path)
	}
	return version, nil
}

// TrivyChecksVersion returns the tag of the checks repository to clone.
func (g *ScannerConfigGenerator) TrivyChecksVersion() (string, error) {
	cfg, err := g.read()
	if err != nil {
		return "", err
	}
	if cfg.IaC.TrivyChecksVersion == "" {
		return "", fmt.Errorf("%s: %s.trivy_checks_version is not set", g.Path, CategoryIaC)
	}
	return cfg.IaC.TrivyChecksVersion, nil
}

func (g *ScannerConfigGenerator) isURLValid(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		slog.Error("could not create request", "url", url, "err", err)
		return false
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		slog.Debug("download link is not reachable", "url", url, "err", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// DownloadLinks builds the release URL of every supported platform for version
// and checks that each one answers a HEAD request with 200.
func (g *ScannerConfigGenerator) DownloadLinks(ctx context.Context, version string) (map[string]string, error) {
	baseURL := g.BaseURL
	if baseURL == "" {
		baseURL = platform.DefaultReleaseURL
	}

	links := make(map[string]string)
	for _, release := range platform.All() {
		url := release.URL(baseURL, version)
		if !g.isURLValid(ctx, url) {
			return nil, fmt.Errorf("%w for system %s: %s", ErrInvalidDownloadLink, release.Platform, url)
		}
		links[string(release.Platform)] = url
	}
	return links, nil
}

// Generate reads the base scanner config and adds the validated download links.
func (g *ScannerConfigGenerator) Generate(ctx context.Context) (*ScannersConfig, error) {
	cfg, err := g.read()
	if err != nil {
		return nil, err
	}
	version, err := g.scannerVersion(cfg)
	if err != nil {
		return nil, err
	}

	links, err := g.DownloadLinks(ctx, version)
	if err != nil {
		return nil, err
	}
	cfg.IaC.ScannerDlLinks = links

	slog.Debug("generated scanner config", "version", cfg.IaC.ScannerVersion)
	return cfg, nil
}
