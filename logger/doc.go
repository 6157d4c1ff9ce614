// Package logger provides structured logging for streamcast using zerolog.
//
// The adapter reports its diagnostics (unrecognised source events, bridge
// lifecycle at debug level) through this package. By default output goes to
// stderr in console format at warn level; hosts can install their own
// logger with SetGlobalLogger or pass one to cast.WithLogger.
//
// # Configuration
//
//	logging:
//	  level: "warn"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("bridge")
//	log.Warn("unknown event dropped", logger.Fields(logger.FieldProtocol, "kefir"))
package logger
