package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/cyto/views"
)

// viewCommand creates the view command group.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Manage network views and exports",
	}

	cmd.AddCommand(c.viewListCommand())
	cmd.AddCommand(c.viewCreateCommand())
	cmd.AddCommand(c.viewFitCommand())
	cmd.AddCommand(c.viewExportCommand())
	cmd.AddCommand(c.viewToggleLODCommand())

	return cmd
}

// viewListCommand creates the "view list" subcommand.
func (c *CLI) viewListCommand() *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the views of the current network",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			ids, err := views.NewClient(core).WithLogger(c.Logger).List(cmd.Context(), cyrest.ID(network))
			if err != nil {
				return err
			}
			current, _ := core.State().Default(cyrest.KindView)
			for _, id := range ids {
				printListItem(string(id), id == current)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	return cmd
}

// viewCreateCommand creates the "view create" subcommand.
func (c *CLI) viewCreateCommand() *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a view for the current network",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			id, err := views.NewClient(core).WithLogger(c.Logger).Create(cmd.Context(), cyrest.ID(network))
			if err != nil {
				return err
			}
			printSuccess("Created view")
			printKeyValue("SUID", string(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	return cmd
}

// viewFitCommand creates the "view fit" subcommand.
func (c *CLI) viewFitCommand() *cobra.Command {
	var selected bool
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit the current view to its network",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			if err := views.NewClient(core).WithLogger(c.Logger).FitContent(cmd.Context(), selected); err != nil {
				return err
			}
			printSuccess("View fitted to content")
			return nil
		},
	}
	cmd.Flags().BoolVar(&selected, "selected", false, "fit only the selected nodes and edges")
	return cmd
}

// viewExportCommand creates the "view export" subcommand.
func (c *CLI) viewExportCommand() *cobra.Command {
	var format string
	var zoom float64
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the current view to an image file",
		Long: `Export the current view to an image file.

The file is written by the Cytoscape process, so the path is resolved on
the machine running Cytoscape, not necessarily the one running cygo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}

			f := format
			if f == "" {
				f = formatFromExt(args[0])
			}
			opts := views.ExportOptions{Format: f, Zoom: zoom}
			if err := views.NewClient(core).WithLogger(c.Logger).ExportImage(cmd.Context(), args[0], opts); err != nil {
				return err
			}
			printSuccess("Exported view")
			printDetail("%s", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "image format: PNG, PDF, SVG, JPEG (default: from extension)")
	cmd.Flags().Float64Var(&zoom, "zoom", 0, "scale as a percentage of the on-screen view")
	return cmd
}

// viewToggleLODCommand creates the "view toggle-lod" subcommand.
func (c *CLI) viewToggleLODCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-lod",
		Short: "Toggle full graphics details rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			msg, err := views.NewClient(core).WithLogger(c.Logger).ToggleGraphicsDetails(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("%s", msg)
			return nil
		},
	}
}

// formatFromExt guesses the export format from the file extension.
func formatFromExt(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return "PNG"
	}
	switch strings.ToUpper(path[idx+1:]) {
	case "PDF":
		return "PDF"
	case "SVG":
		return "SVG"
	case "JPG", "JPEG":
		return "JPEG"
	default:
		return "PNG"
	}
}
