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

	"github.com/spf13/cobra"
)

type versionCommand struct{}

func newVersionCommand() Command { return versionCommand{} }

func (versionCommand) Help() string { return "Show version information" }

func (versionCommand) AddArguments(cmd *cobra.Command) {}

func (versionCommand) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "trivy-bundler\n")
	fmt.Fprintf(out, "Version:    %s\n", version)
	fmt.Fprintf(out, "Commit:     %s\n", commit)
	fmt.Fprintf(out, "Built:      %s\n", date)
	fmt.Fprintf(out, "Built by:   %s\n", builtBy)
	return nil
}
