package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/repository"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/seed"
	"github.com/sysu-ecnc-dev/payroll-planner/backend/internal/service"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var weeks int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 按 fixtures 插入雇主、账单和周期性班次)")
	flag.IntVar(&n, "n", 5, "要插入的员工数量")
	flag.IntVar(&weeks, "weeks", 4, "生成最近多少周的班次")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	if cfg.Database.AutoMigrate {
		if err := repository.RunMigrations(ctx, dbpool); err != nil {
			logger.Error("数据库迁移失败", "error", err)
			return
		}
	}

	repo := repository.NewRepository(cfg, dbpool)
	svc := service.New(repo, nil, cfg.DefaultRates())
	seeder := seed.NewSeeder(repo, svc, cfg.Seed.User.Password, cfg.Email.UserDomain)

	today := domain.DateOf(time.Now())

	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
			return
		}
		cnt := seeder.SeedEmployees(context.Background(), n, today)
		slog.Info("插入员工成功", slog.Int("count", cnt))
	case 2:
		if weeks <= 0 {
			slog.Error("请输入合法的周数")
			return
		}
		f, err := seed.LoadFixtures(cfg.Seed.Fixtures)
		if err != nil {
			slog.Error("无法读取 fixtures", slog.String("path", cfg.Seed.Fixtures), slog.String("error", err.Error()))
			return
		}

		from := domain.WeekOf(today.AddDays(-7 * (weeks - 1))).Start()
		result, err := seeder.SeedFixtures(context.Background(), f, from, today)
		if err != nil {
			slog.Error("插入种子数据失败", slog.String("error", err.Error()))
			return
		}
		slog.Info("插入种子数据成功", slog.Int("bills", result.Bills), slog.Int("shifts", result.Shifts))
	default:
		slog.Error("指定的操作非法")
	}
}
