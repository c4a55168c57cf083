// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package filters provides single-argument functions meant to be used with
template pipe syntax (e.g. {{ name|upper }} or {{ config|yaml }}).

Library returns all of them as a template.Context, ready to be passed as a
default context.
*/
package filters
