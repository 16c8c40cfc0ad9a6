package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/narwhalsec/shil/sh"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func statsCommand() *cobra.Command {
	var (
		offset int
		length int
		little bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "stats <file-or-hex>",
		Short: "Histogram the operation classes in an instruction stream",
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
			counts := make(map[string]int)
			for _, op := range ops {
				counts[op.Class.String()]++
			}

			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			slices.Sort(names)

			fmt.Printf("%d instructions, %d classes\n", len(ops), len(counts))
			for _, name := range names {
				fmt.Printf("  %-8s %6d\n", name, counts[name])
			}

			if out == "" {
				return
			}

			values := make([]opts.BarData, 0, len(names))
			for _, name := range names {
				values = append(values, opts.BarData{Value: counts[name]})
			}

			bar := charts.NewBar()
			bar.SetGlobalOptions(
				charts.WithTitleOpts(opts.Title{
					Title:    "SH instruction class histogram",
					Subtitle: fmt.Sprintf("%d instructions from %s", len(ops), args[0]),
				}),
				charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			)
			bar.SetXAxis(names).AddSeries("count", values)

			f, err := os.Create(out)
			if err != nil {
				fmt.Printf("Failed to create %s: %v\n", out, err)
				os.Exit(1)
			}
			defer f.Close()

			page := components.NewPage()
			page.AddCharts(bar)
			if err := page.Render(f); err != nil {
				fmt.Printf("Failed to render chart: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote chart to %s\n", out)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Byte offset into the input")
	cmd.Flags().IntVar(&length, "len", 0, "Number of bytes to process (0 = all)")
	cmd.Flags().BoolVar(&little, "little", false, "Treat the input as little-endian")
	cmd.Flags().StringVar(&out, "out", "", "Write an HTML bar chart to this file")
	return cmd
}
