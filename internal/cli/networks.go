package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cygraph/cygo/pkg/cyrest"
	"github.com/cygraph/cygo/pkg/cyto/networks"
)

// networksCommand creates the networks command group.
func (c *CLI) networksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networks",
		Aliases: []string{"net"},
		Short:   "List, create, and manage networks",
	}

	cmd.AddCommand(c.networksListCommand())
	cmd.AddCommand(c.networksCreateCommand())
	cmd.AddCommand(c.networksDeleteCommand())
	cmd.AddCommand(c.networksSelectCommand())
	cmd.AddCommand(c.networksNodesCommand())
	cmd.AddCommand(c.networksEdgesCommand())

	return cmd
}

// networksListCommand creates the "networks list" subcommand.
func (c *CLI) networksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all networks in the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := networks.NewClient(core)

			entries, err := c.networkEntries(cmd, client)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No networks in the current session")
				return nil
			}

			current, _ := core.State().Default(cyrest.KindNetwork)
			printInfo("%d network(s)", len(entries))
			for _, e := range entries {
				printListItem(fmt.Sprintf("%-10s %s", e.id, e.name), e.id == current)
			}
			return nil
		},
	}
}

// networksCreateCommand creates the "networks create" subcommand.
func (c *CLI) networksCreateCommand() *cobra.Command {
	var (
		nodesFlag string
		edgesFlag string
	)
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a network from node and edge lists",
		Long: `Create a network from comma-separated node names and edges.

Edges are written source-target pairs joined by a dash:

  cygo networks create demo --nodes a,b,c --edges a-b,b-c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := networks.NewClient(core)

			nodes := splitNonEmpty(nodesFlag)
			edges, err := parseEdges(edgesFlag)
			if err != nil {
				return err
			}

			id, err := client.Create(cmd.Context(), args[0], nodes, edges)
			if err != nil {
				return err
			}

			printSuccess("Created network %s", StyleHighlight.Render(args[0]))
			printKeyValue("SUID", string(id))
			printNewline()
			printNextStep("Lay it out", "cygo layout apply force-directed")
			return nil
		},
	}
	cmd.Flags().StringVar(&nodesFlag, "nodes", "", "comma-separated node names")
	cmd.Flags().StringVar(&edgesFlag, "edges", "", "comma-separated source-target pairs")
	return cmd
}

// networksDeleteCommand creates the "networks delete" subcommand.
func (c *CLI) networksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [network]",
		Short: "Delete a network (default: the current network)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := networks.NewClient(core)

			target, err := resolveNetworkArg(cmd, client, args)
			if err != nil {
				return err
			}
			if err := client.Delete(cmd.Context(), target); err != nil {
				return err
			}
			printSuccess("Deleted network")
			return nil
		},
	}
}

// networksSelectCommand creates the "networks select" subcommand with an
// interactive picker.
func (c *CLI) networksSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select [network]",
		Short: "Choose the current network, interactively when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := networks.NewClient(core)

			if len(args) == 1 {
				target, err := resolveNetworkArg(cmd, client, args)
				if err != nil {
					return err
				}
				if err := client.SetCurrent(cmd.Context(), target); err != nil {
					return err
				}
				printSuccess("Current network is now %s", StyleHighlight.Render(string(target)))
				return saveSessionState(core)
			}

			entries, err := c.networkEntries(cmd, client)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No networks to select")
				return nil
			}

			model := NewNetworkListModel(entries)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}
			selected := final.(NetworkListModel).Selected
			if selected == nil {
				printInfo("Nothing selected")
				return nil
			}

			if err := client.SetCurrent(cmd.Context(), selected.id); err != nil {
				return err
			}
			printSuccess("Current network is now %s", StyleHighlight.Render(selected.name))
			return saveSessionState(core)
		},
	}
}

// networksNodesCommand creates the "networks nodes" subcommand.
func (c *CLI) networksNodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes [network]",
		Short: "List the node SUIDs of a network",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := networks.NewClient(core)

			target := cyrest.ID("")
			if len(args) == 1 {
				var err error
				target, err = resolveNetworkArg(cmd, client, args)
				if err != nil {
					return err
				}
			}
			ids, err := client.Nodes(cmd.Context(), target)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// networksEdgesCommand creates the "networks edges" subcommand.
func (c *CLI) networksEdgesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edges [network]",
		Short: "List the edge SUIDs of a network",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}
			client := networks.NewClient(core)

			target := cyrest.ID("")
			if len(args) == 1 {
				var err error
				target, err = resolveNetworkArg(cmd, client, args)
				if err != nil {
					return err
				}
			}
			ids, err := client.Edges(cmd.Context(), target)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

// networkEntry pairs a network identifier with its display name.
type networkEntry struct {
	id   cyrest.ID
	name string
}

// networkEntries fetches the id/name listing used by list and select.
func (c *CLI) networkEntries(cmd *cobra.Command, client *networks.Client) ([]networkEntry, error) {
	names, err := client.Names(cmd.Context())
	if err != nil {
		return nil, err
	}
	entries := make([]networkEntry, 0, len(names))
	for _, n := range names {
		entries = append(entries, networkEntry{id: n.ID, name: n.Name})
	}
	return entries, nil
}

// resolveNetworkArg turns a CLI argument into a network identifier,
// accepting either a SUID or a network title.
func resolveNetworkArg(cmd *cobra.Command, client *networks.Client, args []string) (cyrest.ID, error) {
	if len(args) == 0 {
		return "", nil
	}
	arg := args[0]
	if isNumeric(arg) {
		return cyrest.ID(arg), nil
	}
	return client.GetByName(cmd.Context(), arg)
}

// saveSessionState persists the session defaults so the next invocation
// picks them up.
func saveSessionState(core *cyrest.Client) error {
	f, err := cyrest.NewStateFile("")
	if err != nil {
		return nil // best effort, selection still applied in-process
	}
	return f.Save(core.State())
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseEdges parses "a-b,b-c" into edge structs.
func parseEdges(s string) ([]networks.Edge, error) {
	var edges []networks.Edge
	for _, part := range splitNonEmpty(s) {
		src, dst, ok := strings.Cut(part, "-")
		if !ok || src == "" || dst == "" {
			return nil, fmt.Errorf("malformed edge %q, want source-target", part)
		}
		edges = append(edges, networks.Edge{Source: src, Target: dst})
	}
	return edges, nil
}
