// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI flows, the chat services, and the background
// refresh job into a single process lifecycle: bootstrap the stored session,
// run the login flow when anonymous, then run the conversation screen until
// the user logs out or quits.
package client
