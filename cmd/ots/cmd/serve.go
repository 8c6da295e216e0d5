package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSynth/internal/server"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/planner"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the synthesis HTTP API",
	Long: `Start the HTTP API:
  POST /v1/generate   rule-based generation from a power supply block
  POST /v1/plan       plan-driven build from a request
  GET  /v1/catalog    catalog parts, ?q= for full-text search
  GET  /healthz
  GET  /metrics       Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $OTS_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	cat, parts, closeCatalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer closeLogged("catalog", closeCatalog)

	orch, err := planner.NewOrchestrator(planner.NewRouter(logger),
		command.NewExecutor(cat, command.WithLogger(logger)), planner.WithLogger(logger))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv, err := server.New(server.Deps{
		Engine:       generator.New(cat, generator.WithLogger(logger)),
		Orchestrator: orch,
		Parts:        parts,
		Registry:     reg,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer closeLogged("server", srv.Close)

	httpSrv := server.NewHTTPServer(cfg.Addr, srv.Router())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting ots server", "addr", cfg.Addr, "parts", len(parts))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
