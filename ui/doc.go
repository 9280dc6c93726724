// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ui is the small immediate-mode toolkit behind the wgpucube
// overlay.
//
// A frame runs in three steps. [Input] folds window events into a
// [RawInput]. [Context.Run] lays out the collapsible options panel and
// returns shapes plus texture changes. [Tessellate] turns the shapes into
// meshes the GPU painter can draw. All geometry is in logical points;
// the painter scales by pixels per point.
package ui
