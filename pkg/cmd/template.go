// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/minitpl/pkg/cmd/template"
	"github.com/spf13/cobra"
)

// NewCmd constructs the render command. It lives outside of "template" package
// so that "template" package does not carry dependency on cobra.
func NewCmd(o *template.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render",
		Aliases: []string{"r"},
		Short:   "Render a template (same as top-level command -- e.g. `minitpl -f tpl.txt`)",
		RunE:    func(c *cobra.Command, args []string) error { return o.Run() },
	}
	o.BindFlags(cmd.Flags())
	return cmd
}

func NewVarsCmd(o *template.VarsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "List context variables and loop variables used by a template",
		RunE:  func(c *cobra.Command, args []string) error { return o.Run() },
	}
	o.BindFlags(cmd.Flags())
	return cmd
}
