package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ca-srg/tzbuddy/domain/entity"
	"github.com/ca-srg/tzbuddy/interface/presenter"
	usecase "github.com/ca-srg/tzbuddy/usecase/interface"
)

// CLIController handles command-line interface operations
type CLIController struct {
	converterService usecase.ConverterService
	scheduleService  usecase.ScheduleService
	locationService  usecase.LocationService
	exportService    usecase.ExportService
	configService    usecase.ConfigService
	consolePresenter presenter.ConsolePresenter
	jsonPresenter    presenter.JSONPresenter
	useJSON          bool
	input            io.Reader
	output           io.Writer
}

// NewCLIController creates a new CLI controller
func NewCLIController(
	converterService usecase.ConverterService,
	scheduleService usecase.ScheduleService,
	locationService usecase.LocationService,
	exportService usecase.ExportService,
	configService usecase.ConfigService,
	consolePresenter presenter.ConsolePresenter,
	jsonPresenter presenter.JSONPresenter,
) *CLIController {
	return &CLIController{
		converterService: converterService,
		scheduleService:  scheduleService,
		locationService:  locationService,
		exportService:    exportService,
		configService:    configService,
		consolePresenter: consolePresenter,
		jsonPresenter:    jsonPresenter,
		input:            os.Stdin,
		output:           os.Stdout,
	}
}

// SetJSONOutput switches result rendering to JSON
func (c *CLIController) SetJSONOutput(useJSON bool) {
	c.useJSON = useJSON
}

// Convert runs a one-shot conversion. An empty timeText means "now";
// an empty exportFormat skips export.
func (c *CLIController) Convert(source, timeText, dateText string, targets []string, exportFormat, exportPath string) error {
	var result *entity.ConversionResult
	var err error
	if timeText == "" {
		result, err = c.converterService.ConvertCurrent(source, targets)
	} else {
		result, err = c.converterService.ConvertAt(source, timeText, dateText, targets)
	}
	if err != nil {
		return err
	}

	if err := c.presentConversion(result); err != nil {
		return err
	}

	if exportFormat != "" {
		path, err := c.exportService.Export(
			entity.NewExportRequest(result, entity.ExportFormat(exportFormat), exportPath))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.output, "Exported to %s\n", path)
	}
	return nil
}

// Meet suggests meeting slots for the given parties
func (c *CLIController) Meet(parties []string) error {
	window, err := c.businessWindow()
	if err != nil {
		return err
	}

	slots, err := c.scheduleService.FindMeetingSlots(parties, window)
	if err != nil {
		return err
	}

	if c.useJSON {
		return c.jsonPresenter.PrintMeetingSlots(slots, window)
	}
	return c.consolePresenter.PrintMeetingSlots(slots, window)
}

// Overlap analyzes shared business hours for the given parties
func (c *CLIController) Overlap(parties []string) error {
	window, err := c.businessWindow()
	if err != nil {
		return err
	}

	report, err := c.scheduleService.BusinessHoursOverlap(parties, window)
	if err != nil {
		return err
	}

	if c.useJSON {
		return c.jsonPresenter.PrintOverlapReport(report)
	}
	return c.consolePresenter.PrintOverlapReport(report)
}

// ShowHistory prints recent location searches
func (c *CLIController) ShowHistory() error {
	history, err := c.locationService.SearchHistory()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		_, _ = fmt.Fprintln(c.output, "No search history yet.")
		return nil
	}
	_, _ = fmt.Fprintln(c.output, "Recent searches:")
	for i, query := range history {
		_, _ = fmt.Fprintf(c.output, "  %d. %s\n", i+1, query)
	}
	return nil
}

// ShowShortcuts prints the known timezone shortcuts
func (c *CLIController) ShowShortcuts() error {
	shortcuts := c.converterService.Shortcuts()
	expanded := make([]string, 0, len(shortcuts))
	for _, alias := range shortcuts {
		expanded = append(expanded, fmt.Sprintf("%-10s -> %s", alias, c.converterService.ResolveShortcut(alias)))
	}
	return c.consolePresenter.PrintStringList("Shortcuts", expanded)
}

// ShowCacheStats prints location cache statistics
func (c *CLIController) ShowCacheStats() error {
	stats, err := c.locationService.CacheStats()
	if err != nil {
		return err
	}
	if c.useJSON {
		return c.jsonPresenter.PrintCacheStats(stats)
	}
	return c.consolePresenter.PrintCacheStats(stats)
}

// ClearCache wipes the location cache and history
func (c *CLIController) ClearCache() error {
	if err := c.locationService.ClearCache(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.output, "Location cache cleared.")
	return nil
}

// RunInteractive starts the interactive prompt loop. Input is a
// location, timezone, or shortcut; commands cover history recall and
// cache management.
func (c *CLIController) RunInteractive() error {
	_, _ = fmt.Fprintln(c.output, "tzbuddy interactive mode. Enter a location or timezone; 'help' lists commands.")

	scanner := bufio.NewScanner(c.input)
	for {
		_, _ = fmt.Fprint(c.output, "tzbuddy> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "quit", "exit", "q":
			_, _ = fmt.Fprintln(c.output, "Bye.")
			return nil
		case "help":
			c.printInteractiveHelp()
			continue
		case "history":
			if err := c.ShowHistory(); err != nil {
				c.consolePresenter.PrintError(err)
			}
			continue
		case "shortcuts":
			if err := c.ShowShortcuts(); err != nil {
				c.consolePresenter.PrintError(err)
			}
			continue
		case "clear":
			if err := c.ClearCache(); err != nil {
				c.consolePresenter.PrintError(err)
			}
			continue
		}

		// Bare numbers recall an entry from the search history
		query := line
		if n, err := strconv.Atoi(line); err == nil {
			recalled, err := c.recallHistory(n)
			if err != nil {
				c.consolePresenter.PrintError(err)
				continue
			}
			query = recalled
		}

		if err := c.convertQuery(query); err != nil {
			c.consolePresenter.PrintError(err)
		}
	}
	return scanner.Err()
}

// convertQuery resolves a free-form query and shows the current time
// there alongside the major timezones
func (c *CLIController) convertQuery(query string) error {
	location, err := c.locationService.ResolveLocation(query)
	if err != nil {
		return err
	}

	if location.Info.Address != "" {
		_, _ = fmt.Fprintf(c.output, "Found: %s\n", location.Info.Address)
	}

	result, err := c.converterService.ConvertCurrent(location.Zone.Name(), nil)
	if err != nil {
		return err
	}
	return c.presentConversion(result)
}

func (c *CLIController) presentConversion(result *entity.ConversionResult) error {
	if c.useJSON {
		return c.jsonPresenter.PrintConversion(result)
	}
	return c.consolePresenter.PrintConversion(result)
}

func (c *CLIController) recallHistory(n int) (string, error) {
	history, err := c.locationService.SearchHistory()
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(history) {
		return "", fmt.Errorf("history entry %d does not exist (have %d)", n, len(history))
	}
	return history[n-1], nil
}

func (c *CLIController) businessWindow() (entity.BusinessWindow, error) {
	cfg := c.configService.GetConfig().Schedule
	return entity.NewBusinessWindow(cfg.BusinessStartHour, cfg.BusinessEndHour)
}

func (c *CLIController) printInteractiveHelp() {
	_, _ = fmt.Fprintln(c.output, `Commands:
  <location>   show current time there and in the major timezones
  <number>     repeat a search from the history list
  history      show recent searches
  shortcuts    list timezone shortcuts
  clear        clear the location cache and history
  quit         leave interactive mode`)
}
