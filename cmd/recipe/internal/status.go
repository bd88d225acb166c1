package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/goplus/recipe/internal/lifecycle"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the record of the last build",
	Long: `Status prints the record the last build left in the build directory of the
selected configuration: its state, the failing phase and every phase result.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Print the raw record")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	rec, err := lifecycle.LoadRecord(s.paths.BuildDir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no build recorded in %s", s.paths.BuildDir)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if statusJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "%s/%s %s (run %s, %s)\n", s.recipe.Name, s.recipe.Version, rec.State, rec.ID, rec.Finished.Format("2006-01-02 15:04:05"))
	if rec.FailedPhase != "" {
		fmt.Fprintf(w, "failed phase: %s\n", rec.FailedPhase)
	}
	for _, pr := range rec.Phases {
		if pr.Error != "" {
			fmt.Fprintf(w, "  %-10s %s: %s\n", pr.Phase, pr.Status, pr.Error)
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", pr.Phase, pr.Status)
	}
	if rec.Warnings != "" {
		fmt.Fprintf(w, "warnings: %s\n", rec.Warnings)
	}
	return nil
}
