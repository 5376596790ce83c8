package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/maxvaer/smokecheck/internal/config"
	"github.com/maxvaer/smokecheck/internal/output"
	"github.com/maxvaer/smokecheck/internal/runner"
	"github.com/maxvaer/smokecheck/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var opts config.Options

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"catalog", "list"}},
	{"SELECTION", []string{"group", "method", "path"}},
	{"MATCHERS", []string{"accept"}},
	{"RATE-LIMIT", []string{"timeout", "delay"}},
	{"HTTP", []string{"header", "user-agent", "proxy", "insecure"}},
	{"OUTPUT", []string{"output-dir", "quiet", "no-color", "verbose", "on-result", "fail-on-critical"}},
}

var rootCmd = &cobra.Command{
	Use:     "smokecheck [base_url] [flags]",
	Short:   "Smoke tests for a web application's API and dashboard",
	Version: version.Version,
	Long: `smokecheck calls every endpoint of a web application once, in order,
classifies each response and writes a JSON and a Markdown report with
per-category statistics, critical issues and recommendations.`,
	Example: `  smokecheck
  smokecheck https://staging.example.com
  BASE_URL=http://localhost:8080 smokecheck
  smokecheck -g health,auth -m GET
  smokecheck -c endpoints.yaml -o reports --fail-on-critical
  smokecheck --list -g dashboard
  smokecheck --on-result "notify-send '{method} {path} {status}'"
  smokecheck mock --addr 127.0.0.1:3000`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		opts.BaseURL = resolveBaseURL(args)
		if opts.Timeout <= 0 {
			return fmt.Errorf("--timeout must be positive")
		}
		if opts.Delay < 0 {
			return fmt.Errorf("--delay must not be negative")
		}
		for _, code := range opts.Accept {
			if code < 100 || code > 599 {
				return fmt.Errorf("--accept: %d is not an HTTP status code", code)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.CatalogFile, "catalog", "c", "", "YAML endpoint catalog (default: built-in)")
	f.BoolVar(&opts.ListOnly, "list", false, "Print the selected endpoints and exit")

	// Selection
	f.StringSliceVarP(&opts.Groups, "group", "g", nil, "Only run these groups (comma-separated keys or names)")
	f.StringSliceVarP(&opts.Methods, "method", "m", nil, "Only run these HTTP methods (e.g. GET,POST)")
	f.StringVar(&opts.PathContains, "path", "", "Only run endpoints whose path contains this string")

	// Matchers
	f.Var(&intSliceValue{target: &opts.Accept}, "accept", "Status codes counted as success (default 200,201,204)")

	// Performance
	f.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	f.DurationVar(&opts.Delay, "delay", 0, "Pause between calls")

	// HTTP
	f.StringSliceVarP(new([]string), "header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgent, "user-agent", "", "Custom User-Agent string")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP/SOCKS proxy URL")
	f.BoolVar(&opts.Insecure, "insecure", false, "Skip TLS certificate verification")

	// Output
	f.StringVarP(&opts.OutputDir, "output-dir", "o", ".", "Directory for the JSON and Markdown reports")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print the summary")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging on stderr")

	// Hooks
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command to run for each result (receives JSON on stdin)")
	f.BoolVar(&opts.FailOnCritical, "fail-on-critical", false, "Exit 1 when the run has critical issues")

	rootCmd.AddCommand(mockCmd)

	// Grouped flag listing; subcommands keep cobra's usage text.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			fmt.Fprint(os.Stderr, cmd.UsageString())
			return
		}
		w := os.Stderr
		fmt.Fprint(w, helpBanner(cmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nCommands:\n   %-36s%s\n", mockCmd.Name(), mockCmd.Short)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})

	// Parse headers from string slice into map in PreRun.
	rootCmd.PreRunE = chainPreRun(rootCmd.PreRunE, func(cmd *cobra.Command, args []string) error {
		headers, _ := f.GetStringSlice("header")
		parsed, err := parseHeaders(headers)
		if err != nil {
			return err
		}
		opts.Headers = parsed
		return nil
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveBaseURL picks the target from the argument, then $BASE_URL, then
// the default, and normalizes it.
func resolveBaseURL(args []string) string {
	base := ""
	if len(args) > 0 {
		base = strings.TrimSpace(args[0])
	}
	if base == "" {
		base = strings.TrimSpace(os.Getenv("BASE_URL"))
	}
	if base == "" {
		base = config.DefaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

func parseHeaders(headers []string) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", h)
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out, nil
}

// chainPreRun combines two PreRunE functions.
func chainPreRun(first, second func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if first != nil {
			if err := first(cmd, args); err != nil {
				return err
			}
		}
		return second(cmd, args)
	}
}

// intSliceValue implements pflag.Value for comma-separated int slices.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	parts := strings.Split(s, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid status code %q: %w", p, err)
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" && def != "[]" && def != "." {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf("\n%s   %s\n\n", output.Logo, ver)
}
