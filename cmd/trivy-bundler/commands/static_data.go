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

	"github.com/l3montree-dev/trivy-bundler/cmd/trivy-bundler/config"
	"github.com/l3montree-dev/trivy-bundler/internal/staticdata"
	"github.com/spf13/cobra"
)

type generateStaticDataCommand struct{}

func newGenerateStaticDataCommand() Command { return generateStaticDataCommand{} }

func (generateStaticDataCommand) Help() string { return "Generate static data" }

func (generateStaticDataCommand) AddArguments(cmd *cobra.Command) {
	cmd.Use = "generate-static-data <path>"
	cmd.Long = `Walk the AVD documentation below <path> and write the description and the
remediation snippet of every policy to <output>/static-data/<policyID>.json.
Policy directories without docs.md or Terraform.md are skipped.`
	cmd.Args = cobra.ExactArgs(1)
}

func (generateStaticDataCommand) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected the path to the AVD docs")
	}

	count, err := staticdata.NewGenerator(config.RuntimeBaseConfig.Output).GenerateAll(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Static data generated for %d policies\n", count)
	return nil
}

type clearStaticDataCommand struct{}

func newClearStaticDataCommand() Command { return clearStaticDataCommand{} }

func (clearStaticDataCommand) Help() string { return "Delete all generated static data files" }

func (clearStaticDataCommand) AddArguments(cmd *cobra.Command) {}

func (clearStaticDataCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := staticdata.NewGenerator(config.RuntimeBaseConfig.Output).ClearOutputs(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Static data cleared")
	return nil
}
