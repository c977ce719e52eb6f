package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdesk/driver-import/internal/handlers"
	"github.com/fleetdesk/driver-import/internal/store"
	"github.com/fleetdesk/driver-import/internal/validate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the import wizard's HTTP backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := cfg.ParseDateOrder()
		if err != nil {
			return err
		}
		db, err := store.Open(cfg.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		srv := handlers.NewServer(db, logger, cfg.OrgID, validate.Options{DateOrder: order})
		logger.Info("server started",
			zap.String("addr", cfg.ListenAddr),
			zap.String("db", cfg.DatabasePath))
		return http.ListenAndServe(cfg.ListenAddr, srv.Routes())
	},
}
