package cli

import (
	"github.com/spf13/cobra"

	cyerr "github.com/cygraph/cygo/pkg/errors"
)

// statusCommand creates the status command for probing the Cytoscape
// connection.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to Cytoscape",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.newCore(true)
			if err != nil {
				return err
			}

			info, err := core.EnsureConnected(cmd.Context())
			if err != nil {
				printError("Cytoscape is not reachable")
				printDetail("%s", cyerr.UserMessage(err))
				printNewline()
				printNextStep("Start Cytoscape with the REST port enabled, then retry", "cygo status")
				return err
			}

			printSuccess("Connected to Cytoscape")
			printKeyValue("Endpoint", info.BaseURL)
			printKeyValue("API version", info.APIVersion)
			printKeyValue("Cytoscape version", info.CytoscapeVersion)

			if state := core.State().Snapshot(); len(state) > 0 {
				printNewline()
				for kind, id := range state {
					printKeyValue("Current "+string(kind), string(id))
				}
			}
			return nil
		},
	}
}
