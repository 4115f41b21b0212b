package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"csvprep/internal/config"
	"csvprep/internal/dataprocessing"
	"csvprep/internal/files"
	"csvprep/internal/infrastructure"
)

func main() {
	target := flag.String("target", "", "file or directory to process (default: prompt, falling back to the executable directory)")
	out := flag.String("out", "", "output directory for cleaned copies (default: rewrite in place)")
	backup := flag.Bool("backup", false, "write cleaned copies to the processed_data directory instead of rewriting in place")
	nonInteractive := flag.Bool("non-interactive", false, "never prompt; use flag values and defaults")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if cfg.Paths.BaseDir == "" {
		cfg.Paths.BaseDir = paths.ExecutableDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	logCfg.FilePath = cfg.GetLogFilePath()
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	logger.InfoContext(ctx, "Starting CSV header cleanup",
		slog.String("base_dir", cfg.Paths.BaseDir),
		slog.String("engine", cfg.Processing.Engine))

	fmt.Println("=== CSV header cleanup ===")
	fmt.Println("Strips parenthetical annotations and trailing punctuation from column names")
	fmt.Println()

	targetInput := *target
	useBackup := *backup
	if targetInput == "" && !*nonInteractive {
		stdin := bufio.NewReader(os.Stdin)
		targetInput = promptLine(stdin,
			fmt.Sprintf("Directory or CSV file to process (Enter = %s): ", cfg.Paths.BaseDir))
		if *out == "" && !useBackup {
			answer := promptLine(stdin, "Write cleaned copies to 'processed_data'? (y/n, default n): ")
			useBackup = parseYesNo(answer)
		}
	}

	targetPath, outputDir := resolveTarget(targetInput, useBackup,
		cfg.Paths.BaseDir, cfg.GetProcessedDir())
	if *out != "" {
		outputDir = *out
	}

	var parser dataprocessing.TableParser
	if cfg.UseTableEngine() {
		parser = dataprocessing.NewCSVTableParser()
	}
	manager := files.NewManager(cfg.Processing.TempSuffix)
	processor := dataprocessing.NewProcessor(parser, manager, logger)

	switch {
	case files.IsDirectory(targetPath):
		stats := processor.ProcessDirectory(ctx, targetPath, outputDir)
		if stats.Total == 0 {
			fmt.Printf("No CSV files found in %s\n", targetPath)
		} else {
			fmt.Printf("Processed %d/%d CSV files\n", stats.Succeeded, stats.Total)
		}
	case files.IsCSVFile(targetPath):
		if err := processor.Process(ctx, targetPath, outputDir); err != nil {
			fmt.Printf("Failed to process %s\n", targetPath)
			os.Exit(1)
		}
		fmt.Printf("Processed %s\n", targetPath)
	default:
		logger.ErrorContext(ctx, "Invalid target path",
			slog.String("target", targetPath))
		fmt.Printf("Error: %s is neither a directory nor a .csv file\n", targetPath)
		os.Exit(1)
	}

	fmt.Println("\nDone.")
}

// resolveTarget turns the raw user input and backup choice into the target
// path and output directory. An empty input falls back to the base directory;
// outputDir comes back empty when files are to be rewritten in place.
func resolveTarget(input string, backup bool, baseDir, processedDir string) (targetPath, outputDir string) {
	targetPath = strings.TrimSpace(input)
	if targetPath == "" {
		targetPath = baseDir
	}
	if backup {
		outputDir = processedDir
	}
	return targetPath, outputDir
}

// promptLine prints the prompt and reads one line from r. EOF yields the
// empty string, so piping an empty stdin takes every default.
func promptLine(r *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// parseYesNo interprets a prompt answer; anything but an explicit yes is no.
func parseYesNo(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
