// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd is home to minitpl's "commands": instances of cobra.Command
(not to be confused with ./cmd which bootstraps the minitpl binary).

For a list of commands run:

	$ minitpl help

The root command renders a template (see package cmd/template); "vars"
lists names a template expects from its context.
*/
package cmd
