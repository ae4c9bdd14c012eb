// Package scaffold generates the on-disk layout of a new pypeline project
// and validates the human-entered metadata that goes into it.
package scaffold
