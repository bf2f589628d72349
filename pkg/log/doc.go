// Package log provides DataLog's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by Go's
// standard library slog via a bridge handler, so it composes with anything
// that accepts a slog.Handler while keeping a stable call-site API across
// the engine, partition adapters, and schema helpers.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.WithComponent("engine")
//	l.Info("block wrapped", log.Uint32("sequence", seq))
//
// datalog.Open accepts a Logger through its WithLogger option; without
// one the engine uses a silent no-op logger (NewNop), never a
// package-level global.
package log
