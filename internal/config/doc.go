// Package config assembles and validates configuration for the marketsync
// server and client binaries.
//
// Configuration is merged from three sources, later sources overriding
// earlier non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Beyond the usual address/database settings, [StructuredConfig] carries the
// per-route-group request throttling policy (Server.RateLimit: AuthLimit and
// AuthWindow for the /api/auth endpoints, APILimit and APIWindow for the
// collection endpoints) and the background worker cadence (Workers.SyncInterval
// for the client reconciliation job, Workers.SweepInterval for the server-side
// limiter sweeper). Storage.Local.PollInterval sets how often the client's
// change feed polls the local store for cross-context updates.
//
// [GetStructuredConfig] is the server entry point; [GetClientConfig] derives
// the narrower client view from the same sources.
package config
