package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/cyto/styles"
)

// styleCommand creates the style command group.
func (c *CLI) styleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "List, create, and apply visual styles",
	}

	cmd.AddCommand(c.styleListCommand())
	cmd.AddCommand(c.styleApplyCommand())
	cmd.AddCommand(c.styleCreateCommand())
	cmd.AddCommand(c.styleDeleteCommand())
	cmd.AddCommand(c.styleDefaultsCommand())

	return cmd
}

// styleListCommand creates the "style list" subcommand.
func (c *CLI) styleListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the visual styles in the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			names, err := styles.NewClient(core).List(cmd.Context())
			if err != nil {
				return err
			}
			current, _ := core.State().Default(cyrest.KindStyle)
			for _, name := range names {
				printListItem(name, cyrest.ID(name) == current)
			}
			return nil
		},
	}
}

// styleApplyCommand creates the "style apply" subcommand.
func (c *CLI) styleApplyCommand() *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "apply <style>",
		Short: "Apply a visual style to the current network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			if err := styles.NewClient(core).Apply(cmd.Context(), args[0], cyrest.ID(network)); err != nil {
				return err
			}
			printSuccess("Applied style %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	return cmd
}

// styleCreateCommand creates the "style create" subcommand.
func (c *CLI) styleCreateCommand() *cobra.Command {
	var defaultsFlag []string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a visual style",
		Long: `Create a visual style with optional default properties.

Defaults are given as PROPERTY=VALUE pairs:

  cygo style create Night -d NODE_FILL_COLOR=#222222 -d NODE_SIZE=40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}

			props, err := parseProperties(defaultsFlag)
			if err != nil {
				return err
			}
			name, err := styles.NewClient(core).Create(cmd.Context(), args[0], props)
			if err != nil {
				return err
			}
			printSuccess("Created style %s", StyleHighlight.Render(name))
			printNextStep("Apply it", "cygo style apply "+name)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&defaultsFlag, "default", "d", nil, "default property as PROPERTY=VALUE (repeatable)")
	return cmd
}

// styleDeleteCommand creates the "style delete" subcommand.
func (c *CLI) styleDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <style>",
		Short: "Delete a visual style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			if err := styles.NewClient(core).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted style %s", args[0])
			return nil
		},
	}
}

// styleDefaultsCommand creates the "style defaults" subcommand.
func (c *CLI) styleDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <style>",
		Short: "Show the default properties of a visual style",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			props, err := styles.NewClient(core).Defaults(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, p := range props {
				printKeyValue(p.Name, fmt.Sprintf("%v", p.Value))
			}
			return nil
		},
	}
}

// parseProperties parses PROPERTY=VALUE pairs into style properties.
func parseProperties(pairs []string) ([]styles.Property, error) {
	var props []styles.Property
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("malformed property %q, want PROPERTY=VALUE", pair)
		}
		props = append(props, styles.Property{Name: name, Value: value})
	}
	return props, nil
}
