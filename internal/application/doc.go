// Package application wires the option store, inferrer, HTTP handlers and
// server together so the main package only parses flags and orchestrates
// startup and shutdown.
package application
