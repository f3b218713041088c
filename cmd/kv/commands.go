package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kvClient.Set(args[0], []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Gets the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok, err := kvClient.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("(nil)")
				return nil
			}
			fmt.Println(value)
			return nil
		},
	}

	hsetCmd = &cobra.Command{
		Use:   "hset [key] [field] [value]",
		Short: "Sets the value for a field of a hash key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kvClient.HSet(args[0], args[1], []byte(args[2])); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}

	hgetCmd = &cobra.Command{
		Use:   "hget [key] [field]",
		Short: "Gets the value for a field of a hash key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok, err := kvClient.HGet(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("(nil)")
				return nil
			}
			fmt.Println(value)
			return nil
		},
	}

	hgetallCmd = &cobra.Command{
		Use:   "hgetall [key]",
		Short: "Gets all fields and values of a hash key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := kvClient.HGetAll(args[0])
			if err != nil {
				return err
			}
			if len(fields) == 0 {
				fmt.Println("(empty)")
				return nil
			}
			for _, pair := range fields {
				fmt.Printf("%s: %s\n", pair.Key, pair.Value)
			}
			return nil
		},
	}
)
