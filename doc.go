// Package gg holds the ambient logging seam shared across this module's
// packages.
//
// # Logging
//
// gg produces no log output by default. Call SetLogger to enable it; the
// tiling package's RenderPass and Frame builders call Logger() to report
// pass-build and frame-build diagnostics at [slog.LevelDebug].
package gg
