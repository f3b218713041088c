// Package cmd contains the command line interface: the serve command
// starting the server, the kv client commands, and the perf benchmark.
// Configuration comes from flags, SREDIS_* environment variables and
// optional .env files.
package cmd
