package main

import (
	"fmt"
	"os"

	"github.com/narwhalsec/shil/dump"
	"github.com/spf13/cobra"
)

func dumpCommand() *cobra.Command {
	var (
		addr     uint64
		offset   int
		length   int
		width    int
		noHeader bool
		noASCII  bool
		diff     string
		words    int
		cstring  bool
		little   bool
	)

	cmd := &cobra.Command{
		Use:   "dump <file-or-hex>",
		Short: "Hexdump, diff or format a byte buffer",
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

			switch {
			case diff != "":
				other, err := readInput(diff)
				if err != nil {
					fmt.Printf("Failed to read diff input: %v\n", err)
					os.Exit(1)
				}
				other, err = sliceRange(other, offset, length)
				if err != nil {
					fmt.Printf("Bad diff range: %v\n", err)
					os.Exit(1)
				}
				dump.HexDiff(os.Stdout, addr, data, addr, other)
			case words > 0:
				if err := dump.Words(os.Stdout, addr, data, words, !little); err != nil {
					fmt.Printf("Failed to print words: %v\n", err)
					os.Exit(1)
				}
			case cstring:
				fmt.Println(dump.CString(data))
			default:
				dump.Hexdump(os.Stdout, addr, data, dump.Config{Width: width, NoHeader: noHeader, NoASCII: noASCII})
			}
		},
	}

	cmd.Flags().Uint64Var(&addr, "addr", 0, "Display address of the first byte")
	cmd.Flags().IntVar(&offset, "offset", 0, "Byte offset into the input")
	cmd.Flags().IntVar(&length, "len", 0, "Number of bytes to show (0 = all)")
	cmd.Flags().IntVar(&width, "width", 16, "Bytes per hexdump row")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the column header")
	cmd.Flags().BoolVar(&noASCII, "no-ascii", false, "Omit the ASCII column")
	cmd.Flags().StringVar(&diff, "diff", "", "Second input to diff against")
	cmd.Flags().IntVar(&words, "words", 0, "Print as words of this many bytes (1, 2, 4 or 8)")
	cmd.Flags().BoolVar(&cstring, "cstring", false, "Print as a C string literal")
	cmd.Flags().BoolVar(&little, "little", false, "Read words little-endian")
	return cmd
}
