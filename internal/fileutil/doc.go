// Package fileutil provides the filesystem helpers casstest needs to lay out
// an instance working directory.
//
// EnsureDir and CreateDir create directories (the latter exclusively, so that
// a second instance on the same port collides instead of sharing state), and
// ExtractTarGz unpacks the bundled server distribution with its permission
// bits intact.
package fileutil
