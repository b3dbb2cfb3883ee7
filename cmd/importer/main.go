// Command importer loads the CSV sheets of a board export into an empty
// database. Usage: importer -dir /path/to/csv
package main

import (
	"flag"

	"github.com/avigeya/projectboard/internal/config"
	"github.com/avigeya/projectboard/internal/database"
	"github.com/avigeya/projectboard/internal/importer"
	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", ".", "directory holding the exported CSV files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := importer.New(database.GetDB(), logger, *dir).Run(); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
}
