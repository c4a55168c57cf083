// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of minitpl.

Packages are layered; each depends on the others only as much as required.
In the inventory below, packages are named alongside their coupling:

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

	./cmd/minitpl   // a command-line tool

# Commands

	(1) => pkg/cmd => (2)
	(1) => pkg/cmd/template => (6)
	(1) => pkg/cmd/ui => (0)

"template" (root command) collects context values from files, env vars and
flags, compiles the template and renders it. "vars" lists names a template
expects.

# Context Values

	(1) => pkg/values => (2)
	(2) => pkg/files => (0)

Values are decoded from YAML, JSON or TOML files (local, HTTP or stdin) and
nested via dotted keys.

# Templating

	(2) => pkg/template => (4)
	(2) => pkg/template/core => (1)
	(1) => pkg/filters => (3)

pkg/template tokenizes template text, generates a Starlark render function,
loads it once and calls it per render. pkg/template/core converts values between
Go and Starlark. pkg/filters is the built-in set of filter functions.

# Utilities

	(5) => pkg/orderedmap => (0)
	(1) => pkg/filepos => (0)
	(1) => pkg/spell => (0)
	(1) => pkg/version => (0)
*/
package pkg
