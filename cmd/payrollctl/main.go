package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// App 只在需要数据库的子命令中初始化
type App struct {
	cfg     *config.Config
	dbpool  *sql.DB
	service *service.Service
}

func (a *App) Close() {
	if a.dbpool != nil {
		a.dbpool.Close()
	}
}

func initApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("无法创建数据库连接池: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("无法连接到数据库: %w", err)
	}

	repo := repository.NewRepository(cfg, dbpool)
	rates := cfg.DefaultRates()

	return &App{
		cfg:     cfg,
		dbpool:  dbpool,
		service: service.New(repo, nil, rates),
	}, nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "payrollctl",
		Short:         "薪资规划系统的运维工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(taxCmd())
	rootCmd.AddCommand(rebuildCmd())

	return rootCmd
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("执行失败", "error", err)
		os.Exit(1)
	}
}
