// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/minitpl/pkg/cmd/template"
	"carvel.dev/minitpl/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

func NewDefaultMinitplCmd() *cobra.Command {
	return NewMinitplCmd(template.NewOptions())
}

func NewMinitplCmd(o *template.Options) *cobra.Command {
	cmd := NewCmd(o)

	cmd.Use = "minitpl"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "minitpl renders text templates"
	cmd.Long = `minitpl renders text templates.

Templates mix literal text with {{ expr }} expressions,
{% if cond %}...{% endif %} and {% for x in xs %}...{% endfor %} blocks,
and {# comments #}. Expressions support dotted access (a.b.c) and
filters (name|upper).`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewCmd(template.NewOptions()))
	cmd.AddCommand(NewVarsCmd(template.NewVarsOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
