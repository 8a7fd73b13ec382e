package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"xray/config"
	"xray/internal/adapter/fs"
	"xray/internal/adapter/parser"
)

func main() {
	dir := flag.String("dir", ".", "Source tree to parse")
	runs := flag.Int("n", 5, "Number of passes over the tree")
	flag.Parse()

	if *runs < 1 {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./project -n 5")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	walker := fs.NewWalker(cfg.Parse.Includes, cfg.Parse.Excludes)
	files, err := walker.Walk(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", *dir, err)
		os.Exit(1)
	}

	sources := make([][]byte, 0, len(files))
	var totalBytes int
	for _, f := range files {
		src, err := fs.Reader{}.ReadFile(f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", f.RelPath, err)
			continue
		}
		sources = append(sources, src)
		totalBytes += len(src)
	}

	fmt.Println("PARSER BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Files: %d\n", len(sources))
	fmt.Printf("Bytes: %d\n", totalBytes)
	fmt.Printf("Runs:  %d\n", *runs)
	fmt.Println()

	kinds := make(map[parser.Kind]int)
	failures := 0
	var best, total time.Duration

	for run := 0; run < *runs; run++ {
		start := time.Now()
		for _, src := range sources {
			items, err := parser.Parse(src)
			if run > 0 {
				continue
			}
			if err != nil {
				failures++
				continue
			}
			for _, item := range items {
				kinds[item.Kind()]++
			}
		}
		elapsed := time.Since(start)
		total += elapsed
		if run == 0 || elapsed < best {
			best = elapsed
		}
	}

	fmt.Println("Items per kind (first run):")
	for k := parser.KindShebang; k <= parser.KindCode; k++ {
		fmt.Printf("  %-12s %d\n", k.String()+":", kinds[k])
	}
	if failures > 0 {
		fmt.Printf("  %-12s %d\n", "undecodable:", failures)
	}
	fmt.Println()

	mean := total / time.Duration(*runs)
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Best run: %s\n", best)
	fmt.Printf("Mean run: %s\n", mean)
	if best > 0 {
		mbps := float64(totalBytes) / best.Seconds() / (1 << 20)
		fmt.Printf("Throughput: %.1f MiB/s (best run)\n", mbps)
	}
}
