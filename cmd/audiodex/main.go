package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handiism/audiodex/internal/catalog"
	"github.com/handiism/audiodex/internal/config"
	"github.com/handiism/audiodex/internal/export"
	"github.com/handiism/audiodex/internal/scan"
)

func main() {
	// Command line flags
	var (
		dirFlag      = flag.String("dir", "", "Directory to scan (overrides config)")
		configFlag   = flag.String("config", "", "Path to config file")
		workersFlag  = flag.Int("workers", 0, "Concurrent extraction workers (overrides config)")
		dedupFlag    = flag.Bool("dedup", false, "Remove duplicate files from the catalog after scanning")
		sortFlag     = flag.String("sort", "", "Sort key: artist, title, album, duration, file_size, creation_time")
		searchFlag   = flag.String("search", "", "Print records matching a search query instead of exporting")
		exportFlag   = flag.String("export", "", "Write a JSON catalog export to this path")
		playlistFlag = flag.String("playlist", "", "Write a playlist to this path")
		groupedFlag  = flag.String("album-playlists", "", "Write one playlist per album into this directory")
		formatFlag   = flag.String("format", "", "Playlist format: m3u or pls (overrides config)")
		statsFlag    = flag.Bool("stats", false, "Print catalog statistics")
		verboseFlag  = flag.Bool("verbose", false, "Show per-file progress")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *dirFlag != "" {
		settings.CacheDirectory = *dirFlag
	}
	if flag.NArg() > 0 && *dirFlag == "" {
		settings.CacheDirectory = flag.Arg(0)
	}
	if *workersFlag > 0 {
		settings.WorkerCount = *workersFlag
	}
	if *sortFlag != "" {
		settings.DefaultSortKey = *sortFlag
	}
	if *formatFlag != "" {
		settings.PlaylistFormat = *formatFlag
	}
	if *verboseFlag {
		settings.Verbose = true
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	cat := catalog.New()
	scanner := scan.NewScanner(cat, scan.Options{
		Extensions: settings.Extensions,
		Workers:    settings.WorkerCount,
		OnProgress: func(event scan.ProgressEvent) {
			if event.Level == scan.LevelVerbose && !settings.Verbose {
				return
			}
			prefix := "   "
			switch event.Level {
			case scan.LevelError:
				prefix = "!! "
			case scan.LevelWarning:
				prefix = " ! "
			}
			fmt.Println(prefix + event.Message)
		},
	})

	fmt.Printf("Scanning %s\n", settings.CacheDirectory)
	result, err := scanner.Scan(ctx, settings.CacheDirectory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scanned %d files (%d ok, %d errors)\n",
		result.TotalFiles, result.SuccessCount, result.ErrorCount)

	if *dedupFlag {
		removed := cat.Deduplicate()
		fmt.Printf("Removed %d duplicates, %d unique files remain\n", len(removed), cat.Len())
	}

	cat.Sort(settings.DefaultSortKey)

	if *searchFlag != "" {
		for _, rec := range cat.Search(*searchFlag) {
			fmt.Printf("  %s  (%s)\n", rec.DisplayLabel(), rec.FilePath)
		}
	}

	if *statsFlag {
		stats, err := cat.Statistics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "No statistics: %v\n", err)
		} else {
			fmt.Printf("Success rate:  %.1f%%\n", stats.SuccessRate*100)
			fmt.Printf("Total length:  %s\n", stats.FormatDuration())
			fmt.Printf("Total size:    %.1f MB\n", stats.TotalSizeMB)
			fmt.Printf("Avg duration:  %.1fs per file\n", stats.AverageDuration)
			fmt.Printf("Avg size:      %.1f MB per file\n", stats.AverageSizeMB)
		}
	}

	generatedAt := time.Now().UTC()

	if *exportFlag != "" {
		exporter := export.NewJSONExporter(settings.CacheDirectory)
		if err := exporter.Export(cat, generatedAt, *exportFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote catalog export to %s\n", *exportFlag)
	}

	if *playlistFlag != "" {
		writer := export.NewPlaylistWriter(export.ParseFormat(settings.PlaylistFormat))
		if err := writer.Write(cat.Records(), *playlistFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing playlist: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote playlist to %s\n", *playlistFlag)
	}

	if *groupedFlag != "" {
		writer := export.NewPlaylistWriter(export.ParseFormat(settings.PlaylistFormat))
		groups := cat.GroupByAlbum()
		if err := writer.WriteGroups(groups, *groupedFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing album playlists: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d album playlists to %s\n", len(groups), *groupedFlag)
	}
}
