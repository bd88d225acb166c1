package internal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the package descriptor",
	Long: `Describe prints the libraries the package provides and the requirements it
exposes to consumers. Private requirements are omitted. Nothing is built.`,
	Args: cobra.NoArgs,
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "json", "Output format: json or cmake")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	d := s.recipe.Describe()
	w := cmd.OutOrStdout()

	switch describeFormat {
	case "json":
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case "cmake":
		fmt.Fprintf(w, "libs: %s\n", strings.Join(d.LibraryNames, " "))
		fmt.Fprintf(w, "requires: %s\n", strings.Join(d.Targets(), " "))
	default:
		return fmt.Errorf("unknown format %q", describeFormat)
	}
	return nil
}
