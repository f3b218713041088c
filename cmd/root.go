package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/letsrust/simple-redis/cmd/kv"
	"github.com/letsrust/simple-redis/cmd/serve"
	"github.com/letsrust/simple-redis/cmd/util"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "simple-redis",
		Short: "in-memory RESP key-value server",
		Long: fmt.Sprintf(`simple-redis (v%s)

An in-memory key-value server speaking the RESP wire protocol,
with a sharded concurrent backend and a small client CLI.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of simple-redis",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("simple-redis v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
