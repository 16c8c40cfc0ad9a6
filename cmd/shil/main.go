// shil - SuperH instruction decoder, IL lifter and inspection toolkit
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/narwhalsec/shil/common"
	"github.com/narwhalsec/shil/log"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "shil",
		Short: "SuperH instruction decoder and IL lifter",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		logLevel string
		debug    string
	)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, crit)")
	rootCmd.PersistentFlags().StringVar(&debug, "debug", "", "Debug modules to enable (lift,decode,store,dump,console or all)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.InitLogger(logLevel)
		log.EnableModules(debug)
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shil %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(liftCommand())
	rootCmd.AddCommand(disasmCommand())
	rootCmd.AddCommand(dumpCommand())
	rootCmd.AddCommand(dbCommand())
	rootCmd.AddCommand(consoleCommand())
	rootCmd.AddCommand(statsCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// readInput loads bytes for the inspection commands. An argument naming a
// readable file is read verbatim; anything else must parse as a hex string
// (0x prefix and whitespace allowed).
func readInput(arg string) ([]byte, error) {
	if data, err := os.ReadFile(arg); err == nil {
		return data, nil
	}
	if b := common.Hex2Bytes(arg); len(b) > 0 {
		return b, nil
	}
	return nil, fmt.Errorf("input %q is neither a readable file nor a hex string", arg)
}

// sliceRange windows data by the --offset/--len flags. A length of 0 means
// "through the end of the input".
func sliceRange(data []byte, offset, length int) ([]byte, error) {
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("offset %d out of range (input is %d bytes)", offset, len(data))
	}
	out := data[offset:]
	if length > 0 && length < len(out) {
		out = out[:length]
	}
	return out, nil
}

// byteOrder maps the --little flag onto a byte order. SH instruction streams
// are big-endian unless the flag says otherwise.
func byteOrder(little bool) binary.ByteOrder {
	if little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
