package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arenapool/pond"
	"github.com/arenapool/pond/pondstore"
)

func newAllocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alloc <value>",
		Short: "Allocate a new slot holding <value>",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withPool(func(p *pond.Pool[string]) error {
				i := p.Allocate(args[0])
				log.Debugf("allocated index %d", i)
				fmt.Println(i)
				return nil
			})
		},
	}
}

func newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <index> <value>",
		Short: "Write <value> at <index>, growing the pool if necessary",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			return withPool(func(p *pond.Pool[string]) error {
				old, had := p.Write(i, args[1])
				if had {
					fmt.Printf("replaced %q\n", old)
				} else {
					fmt.Println("no prior value")
				}
				return nil
			})
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <index>",
		Short: "Print the value at <index>, if occupied",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			return withReadOnlyPool(func(p *pond.Pool[string]) error {
				v, ok := p.Get(i)
				if !ok {
					return fmt.Errorf("index %d: %w", i, pond.ErrNotOccupied)
				}
				fmt.Println(v)
				return nil
			})
		},
	}
}

func newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <index>",
		Short: "Free the slot at <index>, printing its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			return withPool(func(p *pond.Pool[string]) error {
				v, ok := p.Release(i)
				if !ok {
					return fmt.Errorf("index %d: %w", i, pond.ErrNotOccupied)
				}
				fmt.Println(v)
				return nil
			})
		},
	}
}

func newDefragCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defrag",
		Short: "Compact the pool, printing the old->new remap",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withPool(func(p *pond.Pool[string]) error {
				printRemap(p.Defragment())
				return nil
			})
		},
	}
}

func newTrimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trim",
		Short: "Defrag, then shrink capacity to the occupied count",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withPool(func(p *pond.Pool[string]) error {
				printRemap(p.Trim())
				fmt.Printf("capacity now %d\n", p.Capacity())
				return nil
			})
		},
	}
}

func printRemap(remap map[int]int) {
	if len(remap) == 0 {
		fmt.Println("no moves")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("old index", "new index")
	for old, n := range remap {
		table.Append(strconv.Itoa(old), strconv.Itoa(n))
	}
	table.Render()
}

// outputFormat is a pflag.Value restricting --format to a fixed set of
// options, so an invalid value is rejected at flag-parse time instead of
// falling through to a runtime default.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatYAML  outputFormat = "yaml"
	formatJSON  outputFormat = "json"
)

func (f *outputFormat) String() string { return string(*f) }
func (f *outputFormat) Type() string   { return "table|yaml|json" }
func (f *outputFormat) Set(v string) error {
	switch outputFormat(v) {
	case formatTable, formatYAML, formatJSON:
		*f = outputFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of table, yaml, json")
	}
}

var _ pflag.Value = (*outputFormat)(nil)

func newDumpCmd() *cobra.Command {
	format := formatTable
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every occupied slot",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withReadOnlyPool(func(p *pond.Pool[string]) error {
				switch format {
				case formatTable:
					table := tablewriter.NewWriter(os.Stdout)
					table.Header("index", "value")
					for i, v := range p.Iter() {
						table.Append(strconv.Itoa(i), v)
					}
					return table.Render()
				case formatYAML:
					out, err := pondstore.MarshalYAML(p)
					if err != nil {
						return err
					}
					fmt.Print(string(out))
					return nil
				case formatJSON:
					out, err := pondstore.Marshal(p)
					if err != nil {
						return err
					}
					fmt.Println(string(out))
					return nil
				default:
					return fmt.Errorf("unknown --format %q (want table, yaml, or json)", format)
				}
			})
		},
	}
	cmd.Flags().Var(&format, "format", "output format: table, yaml, or json")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Allocate n sample values, each tagged with a short uuid",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withPool(func(p *pond.Pool[string]) error {
				for i := 0; i < n; i++ {
					idx := p.Allocate(taggedValue(fmt.Sprintf("sample-%d", i)))
					log.Debugf("seeded index %d", idx)
				}
				fmt.Printf("seeded %d values\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "number of sample values to allocate")
	return cmd
}
