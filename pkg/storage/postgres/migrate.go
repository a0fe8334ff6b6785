package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs a goose command ("up", "down", "status") against dsn using the
// embedded migrations.
func Migrate(ctx context.Context, dsn, command string, log logrus.FieldLogger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if log != nil {
		goose.SetLogger(gooseLogger{log})
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up", "":
		err = goose.UpContext(ctx, db, "migrations")
	case "down":
		err = goose.DownContext(ctx, db, "migrations")
	case "status":
		err = goose.StatusContext(ctx, db, "migrations")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

type gooseLogger struct{ log logrus.FieldLogger }

func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }
