package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dop251/goja"
	"github.com/narwhalsec/shil/common"
	"github.com/narwhalsec/shil/dump"
	"github.com/narwhalsec/shil/il"
	"github.com/narwhalsec/shil/lifter"
	"github.com/narwhalsec/shil/sh"
	"github.com/narwhalsec/shil/storage"
	"github.com/spf13/cobra"
)

func consoleCommand() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Interactive JavaScript console over the decoder, lifter and database",
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.Open(dbPath)
			if err != nil {
				fmt.Println("❌ Failed to open database:", err)
				return
			}
			defer store.Close()

			// Initialize readline, supporting arrow keys and command history
			rl, err := readline.NewEx(&readline.Config{
				Prompt:      "> ",
				HistoryFile: "/tmp/shil_console_history.txt",
			})
			if err != nil {
				fmt.Println("❌ Failed to start readline:", err)
				return
			}
			defer rl.Close()

			// Initialize Goja JavaScript VM
			vm := goja.New()
			l := lifter.New()

			vm.Set("disasm", func(hexStr string) goja.Value {
				data := common.Hex2Bytes(hexStr)
				if len(data) == 0 {
					return vm.ToValue("❌ Bad hex input")
				}
				ops := sh.DecodeBytes(data, binary.BigEndian)
				out := make([]map[string]interface{}, 0, len(ops))
				for i, op := range ops {
					out = append(out, map[string]interface{}{
						"addr": uint64(2 * i),
						"word": fmt.Sprintf("%04x", op.Raw),
						"asm":  op.String(),
					})
				}
				return vm.ToValue(out)
			})

			vm.Set("lift", func(hexStr string) goja.Value {
				data := common.Hex2Bytes(hexStr)
				if len(data) == 0 {
					return vm.ToValue("❌ Bad hex input")
				}
				ops := sh.DecodeBytes(data, binary.BigEndian)
				out := make([]map[string]interface{}, 0, len(ops))
				for i, op := range ops {
					pc := uint64(2 * i)
					entry := map[string]interface{}{
						"addr": pc,
						"asm":  op.String(),
					}
					eff, err := l.Lift(&op, pc)
					if err != nil {
						entry["error"] = err.Error()
						out = append(out, entry)
						continue
					}
					raw, err := il.MarshalEffect(eff)
					if err != nil {
						entry["error"] = err.Error()
						out = append(out, entry)
						continue
					}
					// Return the parsed JSON object so fields are addressable in JS
					var ilDoc interface{}
					if json.Unmarshal(raw, &ilDoc) == nil {
						entry["il"] = ilDoc
					}
					out = append(out, entry)
				}
				return vm.ToValue(out)
			})

			vm.Set("hexdump", func(hexStr string) goja.Value {
				data := common.Hex2Bytes(hexStr)
				if len(data) == 0 {
					return vm.ToValue("❌ Bad hex input")
				}
				var buf strings.Builder
				dump.Hexdump(&buf, 0, data, dump.Config{})
				return vm.ToValue(buf.String())
			})

			vm.Set("db_get", func(key string) goja.Value {
				value, found, err := store.Get([]byte(key))
				if err != nil {
					return vm.ToValue("❌ Get Failed: " + err.Error())
				}
				if !found {
					return goja.Null()
				}
				var jsonData interface{}
				if json.Unmarshal(value, &jsonData) == nil {
					return vm.ToValue(jsonData)
				}
				return vm.ToValue(string(value))
			})

			vm.Set("db_put", func(key, value string) goja.Value {
				if err := store.Put([]byte(key), []byte(value)); err != nil {
					return vm.ToValue("❌ Put Failed: " + err.Error())
				}
				return vm.ToValue(true)
			})

			vm.Set("db_scan", func(prefix string) goja.Value {
				pairs, err := store.PrefixScan([]byte(prefix))
				if err != nil {
					return vm.ToValue("❌ Scan Failed: " + err.Error())
				}
				out := make(map[string]interface{}, len(pairs))
				for _, kv := range pairs {
					var jsonData interface{}
					if json.Unmarshal(kv[1], &jsonData) == nil {
						out[string(kv[0])] = jsonData
					} else {
						out[string(kv[0])] = string(kv[1])
					}
				}
				return vm.ToValue(out)
			})

			vm.Set("db_query", func(key, path string) goja.Value {
				value, found, err := store.Get([]byte(key))
				if err != nil {
					return vm.ToValue("❌ Get Failed: " + err.Error())
				}
				if !found {
					return goja.Null()
				}
				res, ok := storage.Query(string(value), path)
				if !ok {
					return goja.Null()
				}
				return vm.ToValue(res.Unquote())
			})

			vm.Set("print", func(args ...goja.Value) {
				for _, arg := range args {
					fmt.Println(arg.Export())
				}
			})

			// Enter Console interactive mode
			fmt.Println("✅ SHIL Console Started (Readline Mode)")
			fmt.Println("Helpers: disasm(hex), lift(hex), hexdump(hex), db_get(key), db_put(key, value), db_scan(prefix), db_query(key, path)")
			fmt.Println("Type 'exit' to quit.")

			for {
				line, err := rl.Readline()
				if err != nil {
					fmt.Println("🔴 Exiting SHIL Console.")
					break
				}

				line = strings.TrimSpace(line)

				if line == "exit" {
					fmt.Println("🔴 Exiting SHIL Console.")
					break
				}

				// Execute JavaScript
				value, err := vm.RunString(line)
				if err != nil {
					fmt.Println("❌ JavaScript Error:", err)
				} else {
					fmt.Println("✅", value)
				}
			}
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (empty = in-memory)")
	return cmd
}
