// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package template compiles text templates into Starlark functions.

A template is literal text interspersed with {{ expression }} interpolations,
{% tag %} directives (if, for and their ends) and {# comment #} blocks.
Expressions are identifiers, dot chains (user.name, items.0) and filter
pipelines (name|upper).

Template text is split into Tokens, which are compiled in a single pass into
the source of one Starlark function:

	def render(context, do_dots):
	    c_user = context["user"]
	    result = []
	    ...
	    return "".join(result)

That source is loaded exactly once, when the Template is constructed. Each
generated Line keeps the SourceLine of the template token that produced it
so that errors reported by Starlark point back at template text.
*/
package template
