package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"xray/internal/adapter/codec"
	"xray/internal/adapter/fs"
	"xray/internal/adapter/generator"
	"xray/internal/domain"
	"xray/internal/usecase"
)

var (
	genFile            string
	genOutput          string
	genSkipValidations bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a skeleton source tree",
	Long: `Generate packages, modules, classes and functions described by a TOML or
YAML structure file. Bodies are left as pass. The tree is written to
<output>/<root name>. Function and method names must be snake_case and
class names CamelCase unless --skip-validations is given.

Examples:
  xray gen -f zoo.toml
  xray gen -f zoo.yaml -o ./generated --skip-validations`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVarP(&genFile, "file", "f", "", "structure file (required)")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output directory (default is the working directory)")
	genCmd.Flags().BoolVar(&genSkipValidations, "skip-validations", false, "write names that break the naming conventions")
	genCmd.MarkFlagRequired("file")
}

func runGen(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	structure, err := readStructure(genFile)
	if err != nil {
		return err
	}

	out := genOutput
	if out == "" {
		out = GetRootDir()
	}

	genUC := usecase.NewGenerateUseCase(generator.New(), fs.NewWriter())
	genUC.SetProgress(progressReporter("Generating"))

	skip := genSkipValidations || cfg.Generate.SkipValidations
	result, err := genUC.Generate(structure, out, skip)
	if err != nil {
		if result != nil && len(result.Violations) > 0 {
			printViolations(result.Violations)
		}
		return err
	}

	fmt.Printf("\nGeneration complete:\n")
	fmt.Printf("  Packages: %d\n", result.Packages)
	fmt.Printf("  Modules:  %d\n", result.Modules)
	fmt.Printf("\nSource written to: %s\n", result.Dir)
	return nil
}

// readStructure decodes a structure file, picking the codec by extension.
func readStructure(path string) (*domain.Config, error) {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	structure, err := codec.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return structure, nil
}
