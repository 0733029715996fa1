package main

import (
	"flag"
	"fmt"
	"os"

	"formulator/internal/config"
	"formulator/internal/db"
	"formulator/internal/logger"

	"go.uber.org/zap"
)

// migrate up|down|version — ручное управление схемой БД.
func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "использование: migrate up|down|version")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ошибка загрузки конфига:", err)
		os.Exit(1)
	}
	cfg.Log = "dev"
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	switch flag.Arg(0) {
	case "up":
		err = db.MigrateUp(cfg)
	case "down":
		err = db.MigrateDown(cfg)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = db.MigrationVersion(cfg)
		if err == nil {
			logger.Log.Info("Версия схемы", zap.Uint("version", v), zap.Bool("dirty", dirty))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Log.Fatal("Ошибка миграции", zap.Error(err))
	}
}
