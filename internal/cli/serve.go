package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AsagiriBeta/PackMerger/internal/clock"
	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/hash"
	"github.com/AsagiriBeta/PackMerger/internal/server"
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pack merger web service",
	Long: `Run the HTTP API for uploading, merging, and downloading resource packs.

Configuration comes from the config file under the data root and from
PACKMERGER_* environment variables; --listen overrides the bind address.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := server.LoadConfig()
		if err != nil {
			return err
		}
		if serveListenAddr != "" {
			cfg.ListenAddr = serveListenAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, fsops.NewRealFS(), hash.NewSHA256Hasher(), &clock.RealClock{})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "Address to listen on (overrides config)")
}
