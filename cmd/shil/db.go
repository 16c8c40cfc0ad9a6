package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/narwhalsec/shil/storage"
	"github.com/spf13/cobra"
)

func dbCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect the artifact database",
	}
	cmd.PersistentFlags().StringVarP(&dbPath, "db", "d", filepath.Join(os.Getenv("HOME"), ".shil", "db"), "Database path")

	var getCmd = &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.Open(dbPath)
			if err != nil {
				fmt.Printf("Failed to open database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			value, found, err := store.Get([]byte(args[0]))
			if err != nil {
				fmt.Printf("Get failed: %v\n", err)
				os.Exit(1)
			}
			if !found {
				fmt.Printf("Key %q not found\n", args[0])
				os.Exit(1)
			}
			fmt.Printf("%s\n", value)
		},
	}

	var putCmd = &cobra.Command{
		Use:   "put <key> <value>",
		Short: "Store a value under a key",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.Open(dbPath)
			if err != nil {
				fmt.Printf("Failed to open database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			if err := store.Put([]byte(args[0]), []byte(args[1])); err != nil {
				fmt.Printf("Put failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	var delCmd = &cobra.Command{
		Use:   "del <key>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.Open(dbPath)
			if err != nil {
				fmt.Printf("Failed to open database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			if err := store.Delete([]byte(args[0])); err != nil {
				fmt.Printf("Delete failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	var scanCmd = &cobra.Command{
		Use:   "scan [prefix]",
		Short: "List keys and values under a prefix",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.Open(dbPath)
			if err != nil {
				fmt.Printf("Failed to open database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			pairs, err := store.PrefixScan([]byte(prefix))
			if err != nil {
				fmt.Printf("Scan failed: %v\n", err)
				os.Exit(1)
			}
			for _, kv := range pairs {
				fmt.Printf("%q  %s\n", kv[0], kv[1])
			}
		},
	}

	var queryCmd = &cobra.Command{
		Use:   "query <key> <path>",
		Short: "Extract a field from a stored JSON document",
		Long:  "Extract a field from a stored JSON document by dotted path, e.g.\n\n  shil db query asm/8000 insn.mnemonic",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.Open(dbPath)
			if err != nil {
				fmt.Printf("Failed to open database: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			value, found, err := store.Get([]byte(args[0]))
			if err != nil {
				fmt.Printf("Get failed: %v\n", err)
				os.Exit(1)
			}
			if !found {
				fmt.Printf("Key %q not found\n", args[0])
				os.Exit(1)
			}
			res, ok := storage.Query(string(value), args[1])
			if !ok {
				fmt.Printf("Path %q not found under key %q\n", args[1], args[0])
				os.Exit(1)
			}
			fmt.Println(res.Unquote())
		},
	}

	cmd.AddCommand(getCmd, putCmd, delCmd, scanCmd, queryCmd)
	return cmd
}
