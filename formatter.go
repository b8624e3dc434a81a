package reporter

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Klimanso/json-reporter/types"
)

// ResultFormatter is responsible for formatting and displaying the final
// report snapshot.
type ResultFormatter interface {
	FormatResults(records map[string]types.TestRecord) error
}

// ConsoleResultFormatter implements the ResultFormatter interface.
type ConsoleResultFormatter struct {
	logger log.Logger
	out    io.Writer
}

// NewConsoleResultFormatter creates a new ConsoleResultFormatter.
func NewConsoleResultFormatter(logger log.Logger) *ConsoleResultFormatter {
	return &ConsoleResultFormatter{
		logger: logger,
		out:    os.Stdout,
	}
}

// WithWriter redirects the rendered table, used by tests
func (f *ConsoleResultFormatter) WithWriter(out io.Writer) *ConsoleResultFormatter {
	f.out = out
	return f
}

// FormatResults formats and displays the report snapshot as a table.
func (f *ConsoleResultFormatter) FormatResults(records map[string]types.TestRecord) error {
	f.logger.Info("Printing results...")
	stats := ComputeStats(records)

	t := table.NewWriter()
	t.SetOutputMirror(f.out)
	t.SetTitle(fmt.Sprintf("Test Report (%d tests)", stats.Total))

	t.AppendHeader(table.Row{
		"Test", "Status", "Duration", "Details",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Details", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, identity := range sortedIdentities(records) {
		rec := records[identity]
		t.AppendRow(table.Row{
			identity,
			getResultString(rec.Status),
			formatDuration(rec.Duration),
			recordDetails(rec),
		})
	}

	// Color the table based on the overall outcome
	switch stats.Overall() {
	case types.TestStatusSuccess:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.TestStatusSkipped:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		getResultString(stats.Overall()),
		"",
		fmt.Sprintf("%d success, %d fail, %d skipped, %d error",
			stats.Success, stats.Failed, stats.Skipped, stats.Errored),
	})

	t.Render()
	return nil
}

func sortedIdentities(records map[string]types.TestRecord) []string {
	identities := make([]string, 0, len(records))
	for identity := range records {
		identities = append(identities, identity)
	}
	sort.Strings(identities)
	return identities
}

// recordDetails picks the one detail worth showing per status
func recordDetails(rec types.TestRecord) string {
	switch rec.Status {
	case types.TestStatusSkipped:
		return rec.SkipReason
	case types.TestStatusError:
		return firstLine(rec.ErrorReason)
	case types.TestStatusFail:
		return firstLine(rec.Event.Message)
	default:
		return ""
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Helper function to format duration to seconds with 1 decimal place
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
