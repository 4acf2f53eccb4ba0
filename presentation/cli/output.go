package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"storefront_automation/application/scenarios"
	"storefront_automation/domain/entities"
	"storefront_automation/infrastructure/report"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func statusLabel(status entities.ScenarioStatus) string {
	switch status {
	case entities.ScenarioPassed:
		return green("PASS")
	case entities.ScenarioSkipped:
		return yellow("SKIP")
	default:
		return red("FAIL")
	}
}

// printOutcome - writes one line per scenario and the run totals
func printOutcome(w io.Writer, out scenarios.Outcome) {
	fmt.Fprintf(w, "%s %s\n", bold("Run"), out.RunID)
	for _, r := range out.Results {
		fmt.Fprintf(w, "  %s %s %s\n", statusLabel(r.Status), r.Name, gray(r.Duration.Round(time.Millisecond)))
		if r.Error != "" {
			fmt.Fprintf(w, "       %s\n", gray(r.Error))
		}
	}
	s := report.Summarize(out.Results)
	fmt.Fprintf(w, "%s %d total, %s, %s, %s\n",
		bold("Summary:"), s.Total,
		green(fmt.Sprintf("%d passed", s.Passed)),
		red(fmt.Sprintf("%d failed", s.Failed)),
		yellow(fmt.Sprintf("%d skipped", s.Skipped)))
}
