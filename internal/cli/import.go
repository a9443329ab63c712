package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"tester-quiz-service/internal/config"
	"tester-quiz-service/internal/infra/jsonfile"
	"tester-quiz-service/internal/infra/postgres"
	"tester-quiz-service/internal/logger"
)

// NewImportCmd copies tests out of the legacy relational deployment into the
// file-backed catalog, snapshot files included.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import tests from the legacy database into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath)
		},
	}
}

func runImport(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	catalog, err := jsonfile.NewTestCatalog(cfg.TestsPath(), cfg.TestSnapshotDir())
	if err != nil {
		return err
	}

	tests, err := postgres.NewTestLoader(pool).LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, test := range tests {
		if err := catalog.SaveUnique(test); err != nil {
			return fmt.Errorf("import test %s: %w", test.ID, err)
		}
	}
	log.Info().Int("count", len(tests)).Msg("tests imported")
	return nil
}
