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
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is a single step of the release automation.
type Command interface {
	// Help is the one line description shown in the command overview.
	Help() string
	// AddArguments declares positional arguments and flags of the command.
	AddArguments(cmd *cobra.Command)
	Execute(cmd *cobra.Command, args []string) error
}

type Factory func() Command

// Registry maps command names to their factories. It keeps the registration order.
type Registry struct {
	names     []string
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a command. It panics if name is already taken, since that is
// a programming error.
func (r *Registry) Register(name string, factory Factory) {
	if _, ok := r.factories[name]; ok {
		panic(fmt.Sprintf("command %s registered twice", name))
	}
	r.names = append(r.names, name)
	r.factories[name] = factory
}

func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Execute instantiates the command called name and runs it.
func (r *Registry) Execute(cmd *cobra.Command, name string, args []string) error {
	factory, ok := r.factories[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return factory().Execute(cmd, args)
}

// AddTo adds one cobra subcommand per registered command to root.
func (r *Registry) AddTo(root *cobra.Command) {
	for _, name := range r.names {
		c := r.factories[name]()
		sub := &cobra.Command{
			Use:   name,
			Short: c.Help(),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.Execute(cmd, name, args)
			},
		}
		c.AddArguments(sub)
		root.AddCommand(sub)
	}
}
