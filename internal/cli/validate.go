package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"xray/internal/adapter/validator"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check naming conventions of a structure file",
	Long: `Report every function or method that is not snake_case and every class
that is not CamelCase. Exits with an error when any are found.

Examples:
  xray validate -f zoo.toml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "structure file (required)")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	structure, err := readStructure(validateFile)
	if err != nil {
		return err
	}

	violations := validator.Validate(structure)
	if len(violations) == 0 {
		fmt.Println("No naming violations found.")
		return nil
	}

	printViolations(violations)
	return fmt.Errorf("%d naming violations: %w", len(violations), validator.ErrInvalidName)
}

func printViolations(violations []validator.Violation) {
	fmt.Printf("Naming violations:\n")
	for _, v := range violations {
		fmt.Printf("  - %s: %s %q should be %s\n", v.Path, v.Kind, v.Name, v.Rule)
	}
}
