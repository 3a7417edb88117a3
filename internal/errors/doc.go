// Package errors provides structured errors for Enliven.
//
// Every error carries a stable code and a category so callers can react to
// classes of failure without string matching. Errors wrap an underlying
// cause where one exists and cooperate with errors.Is / errors.As.
package errors
