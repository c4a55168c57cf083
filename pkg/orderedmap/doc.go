// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

Template contexts are kept in this flavor of map so that merging several
contexts is deterministic: keys keep the position of their first insertion
while later values override earlier ones.
*/
package orderedmap
