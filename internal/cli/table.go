package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/cyto/tables"
)

// tableCommand creates the table command group.
func (c *CLI) tableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Read and write attribute tables",
	}

	cmd.AddCommand(c.tableGetCommand())
	cmd.AddCommand(c.tableColumnsCommand())
	cmd.AddCommand(c.tableLoadCommand())
	cmd.AddCommand(c.tableDeleteColumnCommand())

	return cmd
}

// tableGetCommand creates the "table get" subcommand.
func (c *CLI) tableGetCommand() *cobra.Command {
	var (
		network string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "get [table]",
		Short: "Dump a table (default: defaultnode) as CSV or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}

			name := cyrest.TableNode
			if len(args) == 1 {
				name = args[0]
			}
			table, err := tables.NewClient(core).Get(cmd.Context(), cyrest.ID(network), name)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return json.NewEncoder(os.Stdout).Encode(table.RowMaps())
			case "csv":
				return writeCSV(os.Stdout, table)
			default:
				return fmt.Errorf("unknown format %q, want csv or json", format)
			}
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv, json")
	return cmd
}

// tableColumnsCommand creates the "table columns" subcommand.
func (c *CLI) tableColumnsCommand() *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "columns [table]",
		Short: "List the columns of a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}

			name := cyrest.TableNode
			if len(args) == 1 {
				name = args[0]
			}
			cols, err := tables.NewClient(core).Columns(cmd.Context(), cyrest.ID(network), name)
			if err != nil {
				return err
			}
			for _, col := range cols {
				flags := ""
				if col.Primary {
					flags = "  primary"
				} else if col.Immutable {
					flags = "  immutable"
				}
				printKeyValue(col.Name, col.Type+StyleDim.Render(flags))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	return cmd
}

// tableLoadCommand creates the "table load" subcommand.
func (c *CLI) tableLoadCommand() *cobra.Command {
	var (
		network string
		table   string
		key     string
	)
	cmd := &cobra.Command{
		Use:   "load <rows.json>",
		Short: "Load rows from a JSON file into a table",
		Long: `Load rows from a JSON file into a table.

The file holds an array of objects; each object is matched to an existing
row by the key column (default "name") and its remaining fields are
written as attributes. Large files are split into multiple requests
automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rows file: %w", err)
			}
			var rows []cyrest.Row
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("parse rows file %s: %w", args[0], err)
			}

			prog := newProgress(c.Logger)
			if err := tables.NewClient(core).Load(cmd.Context(), cyrest.ID(network), table, key, rows); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d rows", len(rows)))
			printSuccess("Loaded %d rows into %s", len(rows), table)
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	cmd.Flags().StringVar(&table, "table", cyrest.TableNode, "target table")
	cmd.Flags().StringVar(&key, "key", "name", "key column used to match rows")
	return cmd
}

// tableDeleteColumnCommand creates the "table delete-column" subcommand.
func (c *CLI) tableDeleteColumnCommand() *cobra.Command {
	var (
		network string
		table   string
	)
	cmd := &cobra.Command{
		Use:   "delete-column <column>",
		Short: "Delete a column from a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			if err := tables.NewClient(core).DeleteColumn(cmd.Context(), cyrest.ID(network), table, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted column %s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	cmd.Flags().StringVar(&table, "table", cyrest.TableNode, "target table")
	return cmd
}

// writeCSV renders a table as CSV preserving the server's column order.
func writeCSV(f *os.File, table *cyrest.Table) error {
	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for i := 0; i < table.Len(); i++ {
		record := make([]string, len(table.Columns))
		for j, col := range table.Columns {
			if v, ok := table.Value(i, col); ok && v != nil {
				record[j] = fmt.Sprintf("%v", v)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
