package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maxvaer/smokecheck/internal/catalog"
	"github.com/maxvaer/smokecheck/internal/logging"
	"github.com/maxvaer/smokecheck/internal/mock"
)

var (
	mockAddr    string
	mockCatalog string
	mockVerbose bool
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Serve a mock target that answers every catalog endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mopts := mock.Options{}
		if mockCatalog != "" {
			cat, err := catalog.LoadFile(mockCatalog)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			mopts.Catalog = cat
		}

		logger, err := logging.New(mockVerbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		fmt.Fprintf(os.Stderr, "[*] Mock target on http://%s (Ctrl-C to stop)\n", mockAddr)
		logger.Debug("mock options", zap.String("catalog", mockCatalog))
		return mock.ListenAndServe(ctx, mockAddr, mopts, logger)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := mockCmd.Flags()
	f.StringVar(&mockAddr, "addr", "127.0.0.1:3000", "Listen address")
	f.StringVarP(&mockCatalog, "catalog", "c", "", "YAML endpoint catalog to serve (default: built-in)")
	f.BoolVarP(&mockVerbose, "verbose", "v", false, "Debug logging on stderr")
}
