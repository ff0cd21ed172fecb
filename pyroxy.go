// Package pyroxy provides a mirroring proxy for Python package indexes.
// It serves a local mirror of a package repository's directory tree and
// filters the links on each package's simple index page, keeping direct
// downloads and dropping links that are redundant next to them.
//
// This package contains domain types, interfaces and the link filtering
// policy following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// goquery/, viper/, fs/).
package pyroxy
