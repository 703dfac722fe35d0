// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the YAPM command line application.
//
// It parses commands, asks for missing values in bubbletea forms, runs the
// register and login use cases from the service package and, after an
// interactive login, a vault screen with background sync in a worker.
package client
