// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the local database, the remote document store, the client
// services, background sync workers and the terminal UI into a single
// process lifecycle driven by the melon CLI.
package client
