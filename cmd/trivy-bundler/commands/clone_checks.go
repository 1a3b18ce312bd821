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
	"github.com/l3montree-dev/trivy-bundler/internal/checks"
	"github.com/spf13/cobra"
)

type cloneTrivyChecksCommand struct {
	git checks.GitClient
}

func newCloneTrivyChecksCommand() Command { return cloneTrivyChecksCommand{} }

func (cloneTrivyChecksCommand) Help() string { return "Clone trivy-checks-repository" }

func (cloneTrivyChecksCommand) AddArguments(cmd *cobra.Command) {
	cmd.Long = `Clone the checks repository at the tag pinned as iac.trivy_checks_version in
scanner_config.yml. Nothing happens if the checks directory already exists.`
}

func (c cloneTrivyChecksCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	tag, err := newScannerConfigGenerator().TrivyChecksVersion()
	if err != nil {
		return err
	}

	cloner := checks.NewCloner(config.RuntimeBaseConfig.ChecksRepository, config.RuntimeBaseConfig.ChecksDir).
		WithProgress(cmd.ErrOrStderr())
	if c.git != nil {
		cloner = cloner.WithGitClient(c.git)
	}

	cloned, err := cloner.Clone(ctx, tag)
	if err != nil {
		return err
	}
	if cloned {
		fmt.Fprintf(cmd.OutOrStdout(), "Cloned %s with tag %s into %s\n", cloner.Repository, tag, cloner.Dir)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Repository already cloned in %s\n", cloner.Dir)
	}
	return nil
}
