package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bossgym/internal/logging"
	"bossgym/internal/protocol"
)

var serveWSCmd = &cobra.Command{
	Use:   "serve-ws",
	Short: "Serve the environment over websockets",
	Long:  `Each websocket connection to /ws gets its own environment and speaks the same protocol as serve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		probe, err := a.controller(a.settings.Seed)
		if err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		gin.DefaultWriter = os.Stderr
		gin.DefaultErrorWriter = os.Stderr

		// connections draw from disjoint seed ranges
		var conns atomic.Int64
		factory := func() (protocol.Env, error) {
			n := conns.Add(1)
			return a.controller(a.settings.Seed + n<<20)
		}
		srv := &http.Server{
			Addr:              a.settings.Listen,
			Handler:           protocol.NewRouter(factory, probe.Space()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logging.Info("serving websockets", logging.Fields{"addr": srv.Addr})
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logging.Info("shutting down", nil)
			return srv.Shutdown(shutdown)
		}
	},
}

func init() {
	serveWSCmd.Flags().String("listen", "127.0.0.1:8765", "address to listen on")
	_ = v.BindPFlag("listen", serveWSCmd.Flags().Lookup("listen"))
	rootCmd.AddCommand(serveWSCmd)
}
