// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the terminal client runtime.
//
// It runs the terminal UI and the query cache collector in a single process
// lifecycle that ends when the user quits or the process is interrupted.
package client
