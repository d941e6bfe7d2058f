// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges, and validates the go-chat-client
// configuration.
//
// Values are collected from three sources and merged with mergo, last
// non-zero value winning: environment variables (caarlos0/env tags on
// [StructuredConfig]), command-line flags ([ParseFlags]), and an optional
// JSON file whose path is resolved from the first two sources.
//
// The client runtime consumes the narrowed [ClientConfig] view produced by
// [GetClientConfig], which also applies defaults and validates the result.
package config
