package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ca-srg/tzbuddy/infrastructure/di"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// A .env file is optional; a missing one is not an error
	_ = godotenv.Load()

	flags := flag.NewFlagSet("tzbuddy", flag.ContinueOnError)
	var (
		source     = flags.String("source", "", "Source timezone, shortcut, or location (default: system timezone)")
		timeText   = flags.String("time", "", "Specific time to convert, e.g. \"14:30\" or \"2:30 PM\"")
		dateText   = flags.String("date", "", "Date for -time, e.g. \"2025-06-21\" (default: today)")
		zones      = flags.String("zones", "", "Comma-separated target timezones (default: configured majors)")
		meet       = flags.String("meet", "", "Comma-separated locations to find meeting slots for")
		overlap    = flags.String("overlap", "", "Comma-separated locations to analyze business-hours overlap for")
		exportFmt  = flags.String("export", "", "Export the conversion result (csv or json)")
		outputPath = flags.String("output", "", "Export file path (default: generated filename)")
		jsonOut    = flags.Bool("json", false, "Print results as JSON")
		debugMode  = flags.Bool("debug", false, "Enable debug logging to stdout")
		history    = flags.Bool("history", false, "Show recent location searches")
		shortcuts  = flags.Bool("shortcuts", false, "List timezone shortcuts")
		cacheStats = flags.Bool("cache-stats", false, "Show location cache statistics")
		clearCache = flags.Bool("clear-cache", false, "Clear the location cache and search history")
		initConfig = flags.Bool("init-config", false, "Write a default configuration file")
		version    = flags.Bool("version", false, "Print version and exit")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	opts := []di.ContainerOption{}
	if *debugMode {
		opts = append(opts, di.WithDebugMode(true))
	}

	container, err := di.NewContainer(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		return 1
	}
	defer func() { _ = container.Close() }()

	controller := container.GetCLIController()
	controller.SetJSONOutput(*jsonOut)
	presenter := container.GetConsolePresenter()

	fail := func(err error) int {
		presenter.PrintError(err)
		return 1
	}

	switch {
	case *version:
		presenter.PrintVersion()
		return 0

	case *initConfig:
		if err := container.GetConfigService().CreateDefaultConfig(); err != nil {
			return fail(err)
		}
		fmt.Printf("Wrote default configuration to %s\n", container.GetConfigService().GetConfigPath())
		return 0

	case *clearCache:
		if err := controller.ClearCache(); err != nil {
			return fail(err)
		}
		return 0

	case *cacheStats:
		if err := controller.ShowCacheStats(); err != nil {
			return fail(err)
		}
		return 0

	case *history:
		if err := controller.ShowHistory(); err != nil {
			return fail(err)
		}
		return 0

	case *shortcuts:
		if err := controller.ShowShortcuts(); err != nil {
			return fail(err)
		}
		return 0

	case *meet != "":
		if err := controller.Meet(splitList(*meet)); err != nil {
			return fail(err)
		}
		return 0

	case *overlap != "":
		if err := controller.Overlap(splitList(*overlap)); err != nil {
			return fail(err)
		}
		return 0

	case *source != "" || *timeText != "" || flags.NArg() > 0:
		src := *source
		if src == "" && flags.NArg() > 0 {
			src = flags.Arg(0)
		}
		if src == "" {
			loc, err := container.GetTimezoneService().GetUserTimezone()
			if err != nil {
				return fail(err)
			}
			src = loc.String()
		}
		if err := controller.Convert(src, *timeText, *dateText, splitList(*zones), *exportFmt, *outputPath); err != nil {
			return fail(err)
		}
		return 0

	default:
		if err := controller.RunInteractive(); err != nil {
			return fail(err)
		}
		return 0
	}
}

// splitList splits a comma-separated flag value, dropping empty items
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
