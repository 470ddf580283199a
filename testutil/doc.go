// Package testutil provides helpers for tests: a seeded thread-safe RNG
// and writers for pickled sample fixtures.
package testutil
