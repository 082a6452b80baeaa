package cli

import (
	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/cyto/sessions"
)

// sessionCommand creates the session command group.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Save, inspect, and reset the Cytoscape session",
	}

	cmd.AddCommand(c.sessionNameCommand())
	cmd.AddCommand(c.sessionSaveCommand())
	cmd.AddCommand(c.sessionNewCommand())
	cmd.AddCommand(c.sessionShowCommand())
	cmd.AddCommand(c.sessionClearCommand())

	return cmd
}

// sessionShowCommand creates the "session show" subcommand. It reads the
// persisted defaults straight from disk without contacting Cytoscape.
func (c *CLI) sessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the persisted current network, view, and style",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cyrest.NewStateFile("")
			if err != nil {
				return err
			}
			state := cyrest.NewSessionState()
			if err := f.Load(state); err != nil {
				return err
			}

			snapshot := state.Snapshot()
			if len(snapshot) == 0 {
				printInfo("No persisted session defaults")
				printDetail("%s", f.Path())
				return nil
			}
			for _, kind := range []cyrest.StateKind{cyrest.KindNetwork, cyrest.KindView, cyrest.KindStyle} {
				if id, ok := snapshot[kind]; ok {
					printKeyValue(string(kind), string(id))
				}
			}
			printDetail("%s", f.Path())
			return nil
		},
	}
}

// sessionClearCommand creates the "session clear" subcommand.
func (c *CLI) sessionClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the persisted session defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cyrest.NewStateFile("")
			if err != nil {
				return err
			}
			if err := f.Delete(); err != nil {
				return err
			}
			printSuccess("Cleared persisted session defaults")
			return nil
		},
	}
}

// sessionNameCommand creates the "session name" subcommand.
func (c *CLI) sessionNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name",
		Short: "Show the current session file name",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			name, err := sessions.NewClient(core).Name(cmd.Context())
			if err != nil {
				return err
			}
			if name == "" {
				printInfo("Session has not been saved yet")
				return nil
			}
			printKeyValue("Session", name)
			return nil
		},
	}
}

// sessionSaveCommand creates the "session save" subcommand.
func (c *CLI) sessionSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <file.cys>",
		Short: "Save the session to a .cys file",
		Long: `Save the session to a .cys file.

The file is written by the Cytoscape process, so the path is resolved on
the machine running Cytoscape.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			if err := sessions.NewClient(core).Save(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Session saved")
			printDetail("%s", args[0])
			return nil
		},
	}
}

// sessionNewCommand creates the "session new" subcommand.
func (c *CLI) sessionNewCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Discard the session and start an empty one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				printWarning("This discards all unsaved work in Cytoscape")
				printNextStep("Re-run with confirmation", "cygo session new --force")
				return nil
			}

			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			if err := sessions.NewClient(core).New(cmd.Context()); err != nil {
				return err
			}

			// The persisted defaults refer to objects that no longer exist.
			if f, err := cyrest.NewStateFile(""); err == nil {
				_ = f.Delete()
			}
			printSuccess("Started a new session")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation")
	return cmd
}
