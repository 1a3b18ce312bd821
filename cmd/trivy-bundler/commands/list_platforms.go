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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/config"
	"github.com/l3montree-dev/trivy-bundler/internal/platform"
	"github.com/spf13/cobra"
)

type listPlatformsCommand struct{}

func newListPlatformsCommand() Command { return listPlatformsCommand{} }

func (listPlatformsCommand) Help() string { return "List the platforms scanners are bundled for" }

func (listPlatformsCommand) AddArguments(cmd *cobra.Command) {
	cmd.Flags().String("scannerVersion", "", "Show the download urls of this version")
}

func (listPlatformsCommand) Execute(cmd *cobra.Command, args []string) error {
	scannerVersion, _ := cmd.Flags().GetString("scannerVersion")

	tw := table.NewWriter()
	header := table.Row{"Platform", "Release", "Archive", "Binary"}
	if scannerVersion != "" {
		header = append(header, "URL")
	}
	tw.AppendHeader(header)

	for _, release := range platform.All() {
		row := table.Row{release.Platform, release.Label, release.Ext, release.BinaryName}
		if scannerVersion != "" {
			row = append(row, release.URL(config.RuntimeBaseConfig.ReleaseURL, scannerVersion))
		}
		tw.AppendRow(row)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
	return err
}
