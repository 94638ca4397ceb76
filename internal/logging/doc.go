// Package logging builds slog loggers for notofetch.
//
// Two formats are supported: a human-oriented console format used by default
// and a JSON format for machine consumption. Output is mirrored to a log file
// under the configured log directory in addition to stdout.
package logging
