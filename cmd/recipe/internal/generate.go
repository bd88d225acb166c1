package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the toolchain files without building",
	Long: `Generate resolves the recipe requirements and writes the dependency and
toolchain manifests into <build>/generators, as the configure phase of build
does.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addStoreFlag(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	if err := s.generator().Generate(cmd.Context(), s.recipe.Requirements.All(), s.config, s.paths); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.paths.GeneratorsDir())
	return nil
}
