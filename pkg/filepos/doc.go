// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filepos provides the concept of Position: a template name and a line
(and optionally a column) within that template.

Positions are attached to every token and every generated line of code so
that errors found while compiling or rendering can point back at the
template text that caused them.

Not all Positions point within a template (e.g. setup code that is
generated). The zero-value of Position (see NewUnknownPosition()) represents
this case.
*/
package filepos
