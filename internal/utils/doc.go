// Package utils exposes reusable helpers consumed by the CLI commands.
//
// It currently houses the ConfigurationLoader and LoggerFactory abstractions
// that integrate Viper, environment variables, and zap logging, plus a
// FlushingWriter that keeps prompt output visible on buffered writers.
package utils
