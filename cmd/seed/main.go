// Command seed populates a local SQLite store with sample portfolio data so
// the dashboard can be exercised without a spreadsheet.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/ssaa/navigator/internal/adapters/store"
	"github.com/ssaa/navigator/internal/domain/model"
	"github.com/ssaa/navigator/pkg/logger"
)

const defaultTimeout = 30 * time.Second

func main() {
	var (
		dbPath = flag.String("db", "navigator.db", "Path to the SQLite database file")
		reset  = flag.Bool("reset", false, "Wipe existing evaluation and settings rows before seeding")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	st, err := store.OpenSQLite(*dbPath)
	if err != nil {
		log.Error(ctx, "failed to open database", logger.String("db", *dbPath), logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		_ = st.Close()
	}()

	if *reset {
		for _, table := range []string{model.TableEvaluations, model.TableSettings, model.TableHistory} {
			if err := st.DeleteAll(ctx, table); err != nil {
				log.Error(ctx, "failed to reset table", logger.String("table", table), logger.Error(err))
				os.Exit(1)
			}
		}
		log.Info(ctx, "existing rows cleared")
	}

	seeded := 0
	for _, row := range model.SampleEvaluations() {
		if err := st.AppendRow(ctx, model.TableEvaluations, row); err != nil {
			log.Error(ctx, "failed to seed evaluation",
				logger.String("projectID", row[model.ColProjectID]), logger.Error(err))
			os.Exit(1)
		}
		seeded++
	}
	for _, row := range model.SampleSettings() {
		if err := st.AppendRow(ctx, model.TableSettings, row); err != nil {
			log.Error(ctx, "failed to seed setting",
				logger.String("key", row[model.ColKey]), logger.Error(err))
			os.Exit(1)
		}
		seeded++
	}

	log.Info(ctx, "seeding complete",
		logger.String("db", *dbPath),
		logger.Int("rows", seeded),
	)
}
