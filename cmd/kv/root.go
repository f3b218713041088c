package kv

import (
	"github.com/spf13/cobra"

	"github.com/letsrust/simple-redis/cmd/util"
	"github.com/letsrust/simple-redis/wire/client"
)

var (
	// kvClient is the shared client of all kv subcommands, connected in
	// the persistent pre-run hook
	kvClient *client.Client

	KeyValueCommands = &cobra.Command{
		Use:   "kv",
		Short: "Interact with a running simple-redis server",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := util.BindCommandFlags(cmd); err != nil {
				return err
			}

			t, err := util.GetClientTransport()
			if err != nil {
				return err
			}

			kvClient, err = client.NewClient(t, *util.GetClientConfig())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if kvClient != nil {
				_ = kvClient.Close()
			}
		},
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)
	util.SetupClientFlags(KeyValueCommands)

	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(hgetCmd)
	KeyValueCommands.AddCommand(hsetCmd)
	KeyValueCommands.AddCommand(hgetallCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}
