package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maxvaer/smokecheck/internal/catalog"
	"github.com/maxvaer/smokecheck/internal/config"
	"github.com/maxvaer/smokecheck/internal/filter"
	"github.com/maxvaer/smokecheck/internal/hook"
	"github.com/maxvaer/smokecheck/internal/invoker"
	"github.com/maxvaer/smokecheck/internal/logging"
	"github.com/maxvaer/smokecheck/internal/output"
	"github.com/maxvaer/smokecheck/internal/report"
	"github.com/maxvaer/smokecheck/pkg/version"
)

// ErrCriticalIssues is returned when --fail-on-critical is set and the run
// produced at least one critical issue. Both reports are written first.
var ErrCriticalIssues = errors.New("critical issues found")

// console is where a run prints: status lines and the summary go to out,
// progress messages to errOut.
type console struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

// Run executes the full smoke pipeline against opts.BaseURL.
func Run(ctx context.Context, opts *config.Options) error {
	logger, err := logging.New(opts.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	con := console{
		out:    os.Stdout,
		errOut: os.Stderr,
		color:  output.ColorEnabled(os.Stdout, opts.NoColor),
	}
	_, _, err = run(ctx, opts, con, logger)
	return err
}

func run(ctx context.Context, opts *config.Options, con console, logger *zap.Logger) (*report.Report, output.Paths, error) {
	// 1. Load catalog.
	cat, source, err := loadCatalog(opts.CatalogFile)
	if err != nil {
		return nil, output.Paths{}, err
	}

	// 2. Apply selection filters.
	chain, labels := buildChain(opts)
	if chain.Len() > 0 {
		before := cat.Len()
		cat = chain.Apply(cat)
		logger.Debug("catalog filtered",
			zap.Strings("filters", labels),
			zap.Int("before", before),
			zap.Int("after", cat.Len()),
		)
	}

	if opts.ListOnly {
		listCatalog(con.out, cat)
		return nil, output.Paths{}, nil
	}

	// 3. Create HTTP session.
	req, err := invoker.NewRequester(opts)
	if err != nil {
		return nil, output.Paths{}, fmt.Errorf("creating requester: %w", err)
	}

	if !opts.Quiet {
		output.WriteBanner(con.errOut, output.BannerInfo{
			Version:   version.Version,
			Target:    req.BaseURL(),
			Catalog:   source,
			Endpoints: cat.Len(),
			OutputDir: outputDir(opts.OutputDir),
			Filters:   labels,
		}, con.color)
	}

	started := time.Now()

	// 4. Probe the session. The run continues either way.
	if !opts.Quiet {
		fmt.Fprintf(con.errOut, "[*] Attempting authentication...\n")
	}
	authenticated := invoker.NewProber(req, logger).Probe(ctx)
	if !opts.Quiet {
		if authenticated {
			fmt.Fprintf(con.errOut, "[+] Already authenticated\n")
		} else {
			fmt.Fprintf(con.errOut, "[!] Not authenticated - tests will run without auth\n")
		}
	}

	// 5. Invoke every entry in catalog order.
	lines := con.out
	if opts.Quiet {
		lines = io.Discard
	}
	inv := invoker.New(req, invoker.Options{
		Accept: opts.Accept,
		Out:    lines,
		Color:  con.color,
		Logger: logger,
	})

	var hookRunner *hook.Runner
	if opts.OnResultCmd != "" {
		hookOut := con.errOut
		if opts.Quiet {
			hookOut = io.Discard
		}
		hookRunner = hook.NewRunner(opts.OnResultCmd, hookOut, logger)
	}

	interrupted := invokeAll(ctx, opts, cat, inv, hookRunner, con)
	if interrupted && !opts.Quiet {
		fmt.Fprintf(con.errOut, "\n[!] Interrupted - writing report for %d completed calls\n", len(inv.Results()))
	}

	// 6. Aggregate and write reports.
	finished := time.Now()
	r := report.Build(inv.Results(), report.Meta{
		RunID:    uuid.NewString(),
		BaseURL:  req.BaseURL(),
		Started:  started,
		Finished: finished,
	})
	logger.Debug("run finished",
		zap.String("run_id", r.Metadata.RunID),
		zap.Int("results", r.Summary.TotalTests),
		zap.Int("critical_issues", len(r.CriticalIssues)),
	)

	paths, err := output.WriteReports(opts.OutputDir, finished, r)
	if err != nil {
		return r, paths, err
	}

	if err := output.NewSummaryWriter(con.out, con.color).Write(r, paths); err != nil {
		return r, paths, fmt.Errorf("writing summary: %w", err)
	}

	if interrupted {
		return r, paths, fmt.Errorf("run interrupted: %w", ctx.Err())
	}
	if opts.FailOnCritical && len(r.CriticalIssues) > 0 {
		return r, paths, fmt.Errorf("%w: %d", ErrCriticalIssues, len(r.CriticalIssues))
	}
	return r, paths, nil
}

// invokeAll calls each entry once, in order. It reports whether ctx was
// cancelled before every entry was called.
func invokeAll(
	ctx context.Context,
	opts *config.Options,
	cat catalog.Catalog,
	inv *invoker.Invoker,
	hookRunner *hook.Runner,
	con console,
) bool {
	first := true
	for _, group := range cat.Groups {
		if ctx.Err() != nil {
			return true
		}
		if !opts.Quiet {
			fmt.Fprintf(con.errOut, "\n[*] Testing %s...\n", group.Name)
		}

		for _, entry := range group.Entries {
			if !first && opts.Delay > 0 {
				select {
				case <-time.After(opts.Delay):
				case <-ctx.Done():
				}
			}
			if ctx.Err() != nil {
				return true
			}
			first = false

			res := inv.Invoke(ctx, invoker.Call{
				Method:      entry.Method,
				Path:        entry.Path,
				Description: entry.Description,
				Body:        entry.Body,
				Accept:      entry.Accept,
			})
			if hookRunner != nil {
				hookRunner.Run(ctx, &res)
			}
		}
	}
	return false
}

func loadCatalog(path string) (catalog.Catalog, string, error) {
	if path == "" {
		return catalog.Default(), "built-in", nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return catalog.Catalog{}, "", fmt.Errorf("loading catalog: %w", err)
	}
	return cat, path, nil
}

func buildChain(opts *config.Options) (*filter.Chain, []string) {
	chain := filter.NewChain()
	var labels []string
	if len(opts.Groups) > 0 {
		chain.Add(filter.NewGroupFilter(opts.Groups))
		labels = append(labels, "group="+strings.Join(opts.Groups, ","))
	}
	if len(opts.Methods) > 0 {
		chain.Add(filter.NewMethodFilter(opts.Methods))
		labels = append(labels, "method="+strings.Join(opts.Methods, ","))
	}
	if opts.PathContains != "" {
		chain.Add(filter.NewPathFilter(opts.PathContains))
		labels = append(labels, "path~"+opts.PathContains)
	}
	return chain, labels
}

func listCatalog(w io.Writer, cat catalog.Catalog) {
	for _, group := range cat.Groups {
		fmt.Fprintf(w, "%s (%s)\n", group.Name, group.Key)
		for _, e := range group.Entries {
			fmt.Fprintf(w, "  %-6s %s - %s\n", e.Method, e.Path, e.Description)
		}
	}
	fmt.Fprintf(w, "\n%d endpoints\n", cat.Len())
}

func outputDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
