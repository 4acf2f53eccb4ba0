package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"storefront_automation/application/pages"
	"storefront_automation/application/scenarios"
	"storefront_automation/infrastructure/config"
	"storefront_automation/infrastructure/report"
	"storefront_automation/infrastructure/storage"
	"storefront_automation/infrastructure/webdriver"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		parallel int
		backend  string
		headed   bool
	)

	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios, all of them when none is named",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("parallel") {
				a.cfg.Runner.Parallel = parallel
			}
			if cmd.Flags().Changed("backend") {
				a.cfg.Browser.Backend = backend
			}
			if headed {
				a.cfg.Browser.Headless = false
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			list, err := scenarios.Select(scenarios.Catalog(), args...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out, err := a.run(ctx, list)
			if out.RunID != "" {
				printOutcome(cmd.OutOrStdout(), out)
			}
			if err != nil {
				return err
			}
			if s := report.Summarize(out.Results); s.Failed > 0 {
				return fmt.Errorf("%d of %d scenario(s) failed", s.Failed, s.Total)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "number of browser sessions running at the same time")
	cmd.Flags().StringVar(&backend, "backend", config.BackendSelenium, "driver backend: selenium or playwright")
	cmd.Flags().BoolVar(&headed, "headed", false, "show the browser window")
	return cmd
}

// run - wires storage, listeners and the session factory, then runs list
func (a *app) run(ctx context.Context, list []scenarios.Scenario) (scenarios.Outcome, error) {
	store, err := storage.NewStateStore(a.cfg.Paths.State)
	if err != nil {
		return scenarios.Outcome{}, err
	}

	sessions, err := webdriver.NewSessionFactory(a.cfg.Browser, a.cfg.Paths.DownloadDir(), a.logger)
	if err != nil {
		return scenarios.Outcome{}, err
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			a.logger.Warnf("Failed to close browser backend: %v", err)
		}
	}()

	listener := report.Multi{
		report.NewLogListener(a.logger),
		report.NewJSONReporter(a.cfg.Paths.Reports, a.logger),
		report.NewHistoryListener(store),
	}

	runner := scenarios.NewRunner(sessions, a.cfg, store, listener, a.logger)
	return runner.Run(ctx, list)
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, s := range scenarios.Catalog() {
				fmt.Fprintf(w, "%s\n  %s\n", bold(s.Name), s.Description)
				if s.DependsOn != "" {
					fmt.Fprintf(w, "  %s\n", gray("after "+s.DependsOn))
				}
			}
			return nil
		},
	}
}

func newGraphCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the page navigation graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			edges := pages.Graph()
			if from == "" {
				for _, e := range edges {
					fmt.Fprintln(w, e)
				}
				return nil
			}

			start, err := pages.ParseKind(from)
			if err != nil {
				return err
			}
			reachable := pages.Reachable(edges, start)
			for _, k := range pages.Kinds() {
				if reachable[k] {
					fmt.Fprintln(w, k)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "print only the pages reachable from this page")
	return cmd
}

func newHistoryCommand(a *app) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print recorded scenario results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewStateStore(a.cfg.Paths.State)
			if err != nil {
				return err
			}
			results, err := store.LoadHistory()
			if err != nil {
				return err
			}
			if last > 0 && len(results) > last {
				results = results[len(results)-last:]
			}

			w := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(w, "%s %s %s %s\n", r.StartedAt.Format("2006-01-02 15:04:05"), statusLabel(r.Status), r.Name, gray(r.RunID))
			}
			s := report.Summarize(results)
			fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", s.Passed, s.Failed, s.Skipped)
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 20, "number of most recent results to print, 0 for all")
	return cmd
}
