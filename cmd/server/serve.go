package main

import (
	"context"
	"fmt"
	"time"

	"github.com/projecthub/backend/config"
	"github.com/projecthub/backend/internal/pkg/tracing"
	"github.com/projecthub/backend/internal/router"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func newServeCommand() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if port != "" {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "监听端口，覆盖配置文件")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	klog.V(6).Info("服务启动中...")

	shutdown, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			klog.Warningf("tracing shutdown failed: %v", err)
		}
	}()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	r := router.Setup(cfg, a.handlers())
	klog.Infof("Server starting on port %s...", cfg.Server.Port)
	return r.Run(":" + cfg.Server.Port)
}
