// Package pb holds the wire messages of gfpoly.proto: polynomials, remote
// queries and their responses, and the reference database file.
package pb

//go:generate protoc --gogo_out=paths=source_relative:. gfpoly.proto
