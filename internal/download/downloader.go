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

package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/l3montree-dev/trivy-bundler/internal/archive"
	"github.com/l3montree-dev/trivy-bundler/internal/platform"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

const (
	ArchivesDirName = "archives"
	ScannersDirName = "scanners"
)

var maxArchiveSize int64 = 1 << 30 // 1GiB

var ErrArchiveTooLarge = errors.New("release archive exceeds the maximum size")

// Downloader fetches the scanner release archives of one version and extracts
// the scanner binary for every supported platform.
type Downloader struct {
	version     string
	outputDir   string
	baseURL     string
	client      *http.Client
	progressOut io.Writer
	out         io.Writer
}

type Option func(*Downloader)

func WithHTTPClient(client *http.Client) Option {
	return func(d *Downloader) { d.client = client }
}

func WithBaseURL(baseURL string) Option {
	return func(d *Downloader) { d.baseURL = baseURL }
}

// WithProgressWriter sets where download progress bars are rendered. Defaults to stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(d *Downloader) { d.progressOut = w }
}

// WithOutput sets where the per platform progress lines are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Downloader) { d.out = w }
}

func NewDownloader(version, outputDir string, opts ...Option) *Downloader {
	d := &Downloader{
		version:     version,
		outputDir:   outputDir,
		baseURL:     platform.DefaultReleaseURL,
		client:      http.DefaultClient,
		progressOut: os.Stderr,
		out:         os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Downloader) ArchivesDir() string {
	return filepath.Join(d.outputDir, ArchivesDirName)
}

func (d *Downloader) ScannersDir() string {
	return filepath.Join(d.outputDir, ScannersDirName)
}

func (d *Downloader) initOutputDirs() error {
	for _, dir := range []string{d.ArchivesDir(), d.ScannersDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "could not create %s", dir)
		}
	}
	return nil
}

// DownloadRelease downloads the release archive of p and returns its path.
func (d *Downloader) DownloadRelease(ctx context.Context, p platform.Platform) (string, error) {
	release, ok := platform.Get(p)
	if !ok {
		return "", fmt.Errorf("unsupported platform: %s", p)
	}
	if err := d.initOutputDirs(); err != nil {
		return "", err
	}

	url := release.URL(d.baseURL, d.version)
	slog.Debug("downloading release", "platform", p, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "could not create download request")
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "could not download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("could not download %s: %s", url, resp.Status)
	}

	archivePath := filepath.Join(d.ArchivesDir(), release.ArchiveName())
	f, err := os.Create(archivePath)
	if err != nil {
		return "", errors.Wrap(err, "could not create archive file")
	}
	defer f.Close()

	bar := progressbar.NewOptions64(resp.ContentLength,
		progressbar.OptionSetWriter(d.progressOut),
		progressbar.OptionSetDescription(release.ArchiveName()),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	lr := &io.LimitedReader{R: resp.Body, N: maxArchiveSize + 1}
	if _, err := io.Copy(io.MultiWriter(f, bar), lr); err != nil {
		return "", errors.Wrap(err, "could not write archive")
	}
	bar.Finish() // nolint:errcheck
	if lr.N == 0 {
		return "", errors.Wrapf(ErrArchiveTooLarge, "%s is larger than %d bytes", url, maxArchiveSize)
	}

	return archivePath, nil
}

// ExtractScanner extracts the scanner binary of p from archivePath into the
// platform's scanner directory and returns the path of the binary.
func (d *Downloader) ExtractScanner(p platform.Platform, archivePath string) (string, error) {
	release, ok := platform.Get(p)
	if !ok {
		return "", fmt.Errorf("unsupported platform: %s", p)
	}

	extractor, err := archive.ForFile(archivePath)
	if err != nil {
		return "", err
	}

	return extractor.Extract(archivePath, release.BinaryName, filepath.Join(d.ScannersDir(), string(p)), "")
}

// ExtractAllScanners downloads and extracts the scanner of every supported
// platform, one after another. The first failure aborts the whole run.
func (d *Downloader) ExtractAllScanners(ctx context.Context) (string, error) {
	releases := platform.All()
	for i, release := range releases {
		fmt.Fprintf(d.out, "Downloading and extracting scanner for %s (%d/%d)\n", release.Platform, i+1, len(releases))

		archivePath, err := d.DownloadRelease(ctx, release.Platform)
		if err != nil {
			return "", err
		}
		if _, err := d.ExtractScanner(release.Platform, archivePath); err != nil {
			return "", errors.Wrapf(err, "could not extract scanner for %s", release.Platform)
		}
	}
	return d.ScannersDir(), nil
}

// ClearOutputs removes all downloaded archives and extracted scanners.
// It is a no-op if the output directory does not exist.
func ClearOutputs(outputDir string) error {
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrap(err, "could not remove output directory")
	}
	return nil
}
