// Package common provides the configuration and logging utilities shared
// by the server, transport and client packages of the boundary layer.
package common
