// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files loads templates and context values from file-like Sources
(local paths, HTTP URLs, standard input) and writes rendered output.

A File knows its Type from its extension, which decides how context files
are decoded.
*/
package files
