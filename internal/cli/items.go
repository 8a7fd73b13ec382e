package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"xray/internal/adapter/parser"
)

var itemsCmd = &cobra.Command{
	Use:   "items <file>",
	Short: "Show the parser items of a single file",
	Long: `Print, as YAML, every item the structural parser recognizes in one file,
including imports and opaque code lines that the structure file leaves out.

Examples:
  xray items zoo/animals/dog.py`,
	Args: cobra.ExactArgs(1),
	RunE: runItems,
}

func init() {
	rootCmd.AddCommand(itemsCmd)
}

// itemEntry tags an item with its kind for display.
type itemEntry struct {
	Kind string      `yaml:"kind"`
	Item parser.Item `yaml:"item"`
}

func runItems(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	items, err := parser.Parse(src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	entries := make([]itemEntry, len(items))
	for i, item := range items {
		entries[i] = itemEntry{Kind: item.Kind().String(), Item: item}
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}
