// Package options holds the process-wide option store: a fixed set of named
// options with defaults, validated get/set/reset, and scoped overrides that
// restore prior values when the scope ends. A Store is constructed once at
// startup and passed to its consumers; it is not safe for concurrent use.
package options
