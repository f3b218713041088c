// Package unix provides the Unix domain socket implementation of the
// transport interfaces. The endpoint is a filesystem path; a stale socket
// file from a previous run is removed before listening.
package unix
