package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/cyto/layouts"
)

// layoutCommand creates the layout command group.
func (c *CLI) layoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "List and apply layout algorithms",
	}

	cmd.AddCommand(c.layoutListCommand())
	cmd.AddCommand(c.layoutApplyCommand())
	cmd.AddCommand(c.layoutParamsCommand())

	return cmd
}

// layoutListCommand creates the "layout list" subcommand.
func (c *CLI) layoutListCommand() *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the installed layout algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(noCache)
			if err != nil {
				return err
			}
			names, err := layouts.NewClient(core).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the catalog cache")
	return cmd
}

// layoutApplyCommand creates the "layout apply" subcommand.
func (c *CLI) layoutApplyCommand() *cobra.Command {
	var network string
	cmd := &cobra.Command{
		Use:   "apply <algorithm>",
		Short: "Apply a layout to the current network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := layouts.NewClient(core)

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Applying %s layout...", args[0]))
			spinner.Start()

			err = client.Apply(cmd.Context(), args[0], cyrest.ID(network))
			if err != nil {
				spinner.StopWithError("Layout failed")
				return err
			}
			spinner.Stop()
			if cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}

			prog.done("Applied " + args[0])
			printSuccess("Layout %s applied", StyleHighlight.Render(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&network, "network", "", "target network SUID (default: current)")
	return cmd
}

// layoutParamsCommand creates the "layout params" subcommand.
func (c *CLI) layoutParamsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params <algorithm>",
		Short: "Show the tunable parameters of a layout algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			params, err := layouts.NewClient(core).Params(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, p := range params {
				printKeyValue(p.Name, fmt.Sprintf("%v", p.Value))
				if p.Description != "" {
					printDetail("%s", p.Description)
				}
			}
			return nil
		},
	}
}
