// Package logger provides structured logging utilities built on Go's
// standard slog package: environment presets for logger construction and a
// set of nil-safe attribute helpers for common logging patterns.
//
// Create loggers using the factory function:
//
//	import "github.com/pharmakit/backoffice/core/logger"
//
//	// Development: text format, debug level
//	log := logger.New(logger.WithDevelopment("backoffice"))
//
//	// Production: JSON format, info level
//	log := logger.New(logger.WithProduction("backoffice"))
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// Attribute helpers return an empty slog.Attr for nil or empty inputs, so
// call sites never need explicit nil checks:
//
//	log.Error("request failed", logger.Error(err), logger.StatusCode(502))
//
// Components that accept an optional logger should default to
// logger.Discard() so logging stays opt-in.
package logger
