// Package core holds numeric helpers and the error taxonomy shared by the
// signal, filter and measurement packages.
package core
