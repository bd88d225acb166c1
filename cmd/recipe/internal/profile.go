package internal

import (
	"github.com/spf13/cobra"

	"github.com/goplus/recipe/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the effective build settings as a profile",
	Long: `Profile prints the settings a build would use, after layering the host
defaults, --profile, the command line flags and the recipe's option defaults.
The output can be saved and passed back with --profile.`,
	Args: cobra.NoArgs,
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	data, err := profile.Marshal(s.config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
