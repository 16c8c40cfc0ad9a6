package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/lifter"
	"github.com/narwhalsec/shil/sh"
	"github.com/narwhalsec/shil/storage"
	"github.com/spf13/cobra"
)

func liftCommand() *cobra.Command {
	var (
		addr   uint64
		offset int
		length int
		little bool
		format string
		save   string
	)

	cmd := &cobra.Command{
		Use:   "lift <file-or-hex>",
		Short: "Lift SH instructions to IL",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			switch format {
			case "tree", "sexpr", "json", "json-pretty":
			default:
				fmt.Printf("Unknown format %q (want tree, sexpr, json or json-pretty)\n", format)
				os.Exit(1)
			}

			data, err := readInput(args[0])
			if err != nil {
				fmt.Printf("Failed to read input: %v\n", err)
				os.Exit(1)
			}
			data, err = sliceRange(data, offset, length)
			if err != nil {
				fmt.Printf("Bad range: %v\n", err)
				os.Exit(1)
			}

			var store *storage.Store
			if save != "" {
				store, err = storage.Open(save)
				if err != nil {
					fmt.Printf("Failed to open database: %v\n", err)
					os.Exit(1)
				}
				defer store.Close()
			}

			order := byteOrder(little)
			ops := sh.DecodeBytes(data, order)
			l := lifter.New()

			for i, op := range ops {
				pc := addr + uint64(2*i)
				fmt.Printf("0x%08x  %04x  %s\n", pc, op.Raw, op.String())

				eff, err := l.Lift(&op, pc)
				if err != nil {
					fmt.Printf("  error: %v\n", err)
					continue
				}

				switch format {
				case "tree":
					fmt.Print(il.EffectTree(eff).String())
				case "sexpr":
					fmt.Printf("  %s\n", eff)
				case "json":
					out, err := il.MarshalEffect(eff)
					if err != nil {
						fmt.Printf("Failed to encode IL: %v\n", err)
						os.Exit(1)
					}
					fmt.Printf("%s\n", out)
				case "json-pretty":
					out, err := il.MarshalEffectIndent(eff)
					if err != nil {
						fmt.Printf("Failed to encode IL: %v\n", err)
						os.Exit(1)
					}
					fmt.Printf("%s\n", out)
				}

				if store != nil {
					raw := make([]byte, 2)
					order.PutUint16(raw, op.Raw)
					ilJSON, err := il.MarshalEffect(eff)
					if err != nil {
						fmt.Printf("Failed to encode IL: %v\n", err)
						os.Exit(1)
					}
					hash, err := store.PutLift(pc, raw, ilJSON)
					if err != nil {
						fmt.Printf("Failed to save lift: %v\n", err)
						os.Exit(1)
					}
					fmt.Printf("  saved %s\n", hash.Hex())
				}
			}
		},
	}

	cmd.Flags().Uint64Var(&addr, "addr", 0, "Address of the first instruction")
	cmd.Flags().IntVar(&offset, "offset", 0, "Byte offset into the input")
	cmd.Flags().IntVar(&length, "len", 0, "Number of bytes to process (0 = all)")
	cmd.Flags().BoolVar(&little, "little", false, "Treat the input as little-endian")
	cmd.Flags().StringVar(&format, "format", "tree", "IL output format (tree, sexpr, json, json-pretty)")
	cmd.Flags().StringVar(&save, "save", "", "Save lifted IL to this database path")
	return cmd
}

func disasmCommand() *cobra.Command {
	var (
		addr    uint64
		offset  int
		length  int
		little  bool
		dumpOps bool
	)

	cmd := &cobra.Command{
		Use:   "disasm <file-or-hex>",
		Short: "Decode SH instructions to assembly text",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := readInput(args[0])
			if err != nil {
				fmt.Printf("Failed to read input: %v\n", err)
				os.Exit(1)
			}
			data, err = sliceRange(data, offset, length)
			if err != nil {
				fmt.Printf("Bad range: %v\n", err)
				os.Exit(1)
			}

			ops := sh.DecodeBytes(data, byteOrder(little))
			for i, op := range ops {
				fmt.Printf("0x%08x  %04x  %s\n", addr+uint64(2*i), op.Raw, op.String())
			}
			if dumpOps {
				spew.Dump(ops)
			}
		},
	}

	cmd.Flags().Uint64Var(&addr, "addr", 0, "Address of the first instruction")
	cmd.Flags().IntVar(&offset, "offset", 0, "Byte offset into the input")
	cmd.Flags().IntVar(&length, "len", 0, "Number of bytes to process (0 = all)")
	cmd.Flags().BoolVar(&little, "little", false, "Treat the input as little-endian")
	cmd.Flags().BoolVar(&dumpOps, "dump", false, "Dump the decoded operation records")
	return cmd
}
