// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server contains the HTTP server started by the logfactory serve command.
// It sets up the HTTP server using the Fiber framework, logs every request through the
// logger factory and exposes routes for health checks and for the effective logging configuration.
package server
