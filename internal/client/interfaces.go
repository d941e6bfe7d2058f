// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the lifecycle contract the entry point programs against.
type Client interface {
	// Run starts the application and blocks until the user exits or a
	// fatal error occurs.
	Run() error
}
