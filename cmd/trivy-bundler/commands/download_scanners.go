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
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/config"
	"github.com/l3montree-dev/trivy-bundler/internal/download"
	"github.com/l3montree-dev/trivy-bundler/internal/platform"
	"github.com/spf13/cobra"
)

type downloadScannersCommand struct{}

func newDownloadScannersCommand() Command { return downloadScannersCommand{} }

func (downloadScannersCommand) Help() string { return "Download and extract scanners" }

func (downloadScannersCommand) AddArguments(cmd *cobra.Command) {
	cmd.Long = `Delete previous downloads, then download the scanner release of every supported
platform and extract the scanner binary to <output>/scanners/<platform>/.`
}

func (downloadScannersCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	version, err := newScannerConfigGenerator().ScannerVersion()
	if err != nil {
		return err
	}

	outputDir := config.RuntimeBaseConfig.Output
	if err := download.ClearOutputs(outputDir); err != nil {
		return err
	}

	d := download.NewDownloader(version, outputDir,
		download.WithBaseURL(config.RuntimeBaseConfig.ReleaseURL),
		download.WithProgressWriter(cmd.ErrOrStderr()),
		download.WithOutput(cmd.OutOrStdout()),
	)

	scannersDir, err := d.ExtractAllScanners(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderScannerTable(scannersDir, version))
	fmt.Fprintf(cmd.OutOrStdout(), "Scanners downloaded and extracted to: %s\n", scannersDir)
	return nil
}

func renderScannerTable(scannersDir, version string) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Platform", "Version", "Binary", "Size"})
	for _, release := range platform.All() {
		binary := filepath.Join(scannersDir, string(release.Platform), release.BinaryName)
		size := "-"
		if info, err := os.Stat(binary); err == nil {
			size = humanize.Bytes(uint64(info.Size())) // nolint:gosec
		}
		tw.AppendRow(table.Row{release.Platform, version, binary, size})
	}
	return tw.Render()
}

type clearScannersCommand struct{}

func newClearScannersCommand() Command { return clearScannersCommand{} }

func (clearScannersCommand) Help() string { return "Delete all downloaded scanners and archives" }

func (clearScannersCommand) AddArguments(cmd *cobra.Command) {}

func (clearScannersCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := download.ClearOutputs(config.RuntimeBaseConfig.Output); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Scanners cleared")
	return nil
}
