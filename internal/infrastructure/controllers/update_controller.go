package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pystyle/pystyle/internal/domain/commands"
	"github.com/pystyle/pystyle/internal/domain/entities"
)

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update <clones-dir> <data-dir>",
		Short: "Compute style documents for the mirrored projects",
		Long: `Walk the clones directory, compute the configured metric groups
for every project, and merge the results into one JSON document per
project under the data directory, laid out as
<data-dir>/<host>/<owner>/<repo>/style.json.

This is the second half of the cronjob. Use --only to refresh a subset
of metric groups in place:

  pystyle update --only lines ./clones ../pystyle-data`,
		Args: cobra.ExactArgs(2),
	}
}

// Execute runs the update.
func (it *UpdateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	only, _ := cmd.Flags().GetString("only")
	workers, _ := cmd.Flags().GetInt("workers")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if workers > 0 {
		settings.Workers = workers
	}

	logger.Info("Starting update...")

	return it.command.Execute(ctx, settings, commands.UpdateOptions{
		CloneDir: args[0],
		DataDir:  args[1],
		Only:     only,
		Verbose:  verbose,
	})
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("only", "", "Run only metric groups whose name contains this pattern")
	cmd.Flags().Int("workers", 0, "Concurrent analyses (overrides the settings file)")
}
