// Package testutil provides deterministic test signals and float
// assertions shared by the package tests.
package testutil
