package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra metadata a controller exposes.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is implemented by every CLI-facing controller. Execute returns
// an error so run-fatal failures propagate to a non-zero exit status.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
