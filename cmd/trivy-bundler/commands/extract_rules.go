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
	"log/slog"
	"os"
	"path/filepath"

	"github.com/l3montree-dev/trivy-bundler/internal/rules"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type extractRulesCommand struct{}

func newExtractRulesCommand() Command { return extractRulesCommand{} }

func (extractRulesCommand) Help() string { return "Extract rule metadata from the checks repository" }

func (extractRulesCommand) AddArguments(cmd *cobra.Command) {
	cmd.Use = "extract-rules <path>"
	cmd.Long = `Collect the metadata of every check below <path> from Go scan.Rule definitions
and Rego METADATA annotations and print it as JSON. Go definitions win over Rego
definitions with the same AVD id.`
	cmd.Args = cobra.ExactArgs(1)
	cmd.Flags().String("rulesOutput", "", "Write the rules to this file instead of stdout")
}

func (extractRulesCommand) Execute(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected the path to the checks repository")
	}

	found, err := rules.Walk(args[0])
	if err != nil {
		return err
	}
	out, err := rules.ToJSON(found)
	if err != nil {
		return err
	}

	target, _ := cmd.Flags().GetString("rulesOutput")
	if target == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "could not create output directory")
	}
	if err := os.WriteFile(target, out, 0o644); err != nil { // nolint:gosec
		return errors.Wrap(err, "could not write rules")
	}
	slog.Info("extracted rules", "count", len(found), "file", target)
	return nil
}
