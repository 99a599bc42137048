// Package logging builds the service's log/slog logger. Records are JSON by
// default, with a text format for local runs, and every record carries the
// service name so proxy logs can be told apart when shipped together.
package logging
