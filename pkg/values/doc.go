// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package values decodes context values (YAML, JSON or TOML) into ordered maps
suitable for template.NewFromOrderedMaps.

YAML (and JSON, parsed as YAML) keeps mapping keys in document order; TOML
tables are ordered by key.
*/
package values
