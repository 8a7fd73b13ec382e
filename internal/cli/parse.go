package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"xray/config"
	"xray/internal/adapter/codec"
	"xray/internal/adapter/fs"
	"xray/internal/adapter/memstore"
	"xray/internal/adapter/store"
	"xray/internal/adapter/watcher"
	"xray/internal/port"
	"xray/internal/usecase"
)

var (
	parseOutput  string
	parseFormat  string
	parseWatch   bool
	parseNoCache bool
	parseCheck   bool
)

// ErrStale is returned by parse --check when the structure file is outdated.
var ErrStale = errors.New("structure file is out of date")

var parseCmd = &cobra.Command{
	Use:   "parse [path]",
	Short: "Extract the structure of a source tree",
	Long: `Parse every module below the given directory and write the structure as
TOML or YAML. Sub-directories are included when they are packages, that is
when they contain an __init__.py file. Parse results are cached in .xray/cache.db
inside the source tree.

Examples:
  xray parse .                         # Write <dir name>.toml
  xray parse ./zoo -o zoo.yaml         # Format follows the extension
  xray parse ./zoo --format yaml -o -  # Write to stdout
  xray parse ./zoo --watch             # Rewrite on every change
  xray parse ./zoo -o zoo.toml --check # Fail with a diff when zoo.toml is stale`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "output file, - for stdout (default <dir name>.<format>)")
	parseCmd.Flags().StringVar(&parseFormat, "format", "", "output format: toml or yaml (default from extension or config)")
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "keep running and re-parse on changes")
	parseCmd.Flags().BoolVar(&parseNoCache, "no-cache", false, "do not read or write the parse cache")
	parseCmd.Flags().BoolVar(&parseCheck, "check", false, "compare with the existing output instead of writing it")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	format, output, err := parseTarget(cfg, path)
	if err != nil {
		return err
	}

	cache, err := openCache(cfg, path)
	if err != nil {
		return err
	}
	defer cache.Close()

	walker := fs.NewWalker(cfg.Parse.Includes, cfg.Parse.Excludes)
	parseUC := usecase.NewParseUseCase(walker, fs.Reader{}, cache)
	if output != "-" {
		parseUC.SetProgress(progressReporter("Parsing"))
	}

	log.Debug().Str("dir", path).Str("format", string(format)).Msg("parsing")
	if err := parseAndWrite(parseUC, path, format, output); err != nil {
		return err
	}

	if !parseWatch {
		return nil
	}

	parseUC.SetProgress(nil)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(path, fs.SourceExt, walker, cfg.Parse.Debounce, func(changed []string) {
		log.Info().Int("files", len(changed)).Msg("change detected")
		if err := parseAndWrite(parseUC, path, format, output); err != nil {
			log.Error().Err(err).Msg("re-parse failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	log.Info().Str("dir", path).Msg("watching for changes, press Ctrl+C to stop")

	<-ctx.Done()
	return nil
}

// parseTarget resolves the output format and file. An explicit --format
// wins over the output extension, which wins over the configuration.
func parseTarget(cfg *config.Config, dir string) (codec.Format, string, error) {
	output := parseOutput
	if output == "" {
		output = cfg.Parse.Output
	}

	var format codec.Format
	var err error
	switch {
	case parseFormat != "":
		format, err = codec.ParseFormat(parseFormat)
	case output != "" && output != "-":
		format, err = codec.FormatFromPath(output)
	default:
		format, err = codec.ParseFormat(cfg.Parse.Format)
	}
	if err != nil {
		return "", "", err
	}

	if output == "" {
		output = filepath.Join(GetRootDir(), filepath.Base(dir)+"."+string(format))
	}
	return format, output, nil
}

// openCache returns the on-disk cache of dir, or a throwaway one when caching
// is off.
func openCache(cfg *config.Config, dir string) (port.ModuleCache, error) {
	if !cfg.Cache.Enabled || parseNoCache {
		return memstore.NewMemoryStore(), nil
	}

	if err := config.EnsureXrayDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create .xray directory: %w", err)
	}

	st, err := store.NewBoltStore(config.CacheDBPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open parse cache: %w", err)
	}

	result, err := st.Prepare(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check cache schema: %w", err)
	}
	if result.NeedsRebuild {
		log.Info().Str("reason", result.Reason).Msg("parse cache cleared")
	}
	return st, nil
}

func parseAndWrite(parseUC *usecase.ParseUseCase, dir string, format codec.Format, output string) error {
	result, err := parseUC.Parse(dir)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	data, err := codec.Encode(result.Config, format)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if parseCheck {
		return checkOutput(output, data)
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	s := result.Stats
	fmt.Printf("\nParsing complete:\n")
	fmt.Printf("  Packages:  %d\n", s.Packages)
	fmt.Printf("  Modules:   %d\n", s.Modules)
	fmt.Printf("  Classes:   %d\n", s.Classes)
	fmt.Printf("  Functions: %d (including methods)\n", s.Functions)
	fmt.Printf("  Cached:    %d files\n", s.Cached)
	if result.Deleted > 0 {
		fmt.Printf("  Removed:   %d cache entries\n", result.Deleted)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Printf("\nStructure written to: %s\n", output)
	return nil
}

// checkOutput prints a unified diff when the file at output differs from
// data. A missing file counts as empty.
func checkOutput(output string, data []byte) error {
	current, err := os.ReadFile(output)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", output, err)
	}
	diff := codec.Diff(output, current, data)
	if diff == "" {
		fmt.Printf("%s is up to date\n", output)
		return nil
	}
	fmt.Print(diff)
	return fmt.Errorf("%w: %s", ErrStale, output)
}
