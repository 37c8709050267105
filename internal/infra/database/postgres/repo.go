package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ---- Postgres репозиторий (pgxpool) + golang-migrate ----
//
// Два пула: primary обязателен, replica опциональна. Выбор пула — см. router.go.

const statementTimeout = 5 * time.Second

type PGRepo struct {
	logger  *log.Logger
	primary *pgxpool.Pool
	replica *pgxpool.Pool // nil — чтения идут в primary
	schema  string
}

func NewPGRepo(ctx context.Context, logger *log.Logger, dsn, replicaDSN, schema string) (*PGRepo, error) {
	// Запускаем golang-migrate используя pgx/stdlib
	if err := runMigrations(dsn, logger); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	logger.Println("initializing primary pgxpool...")
	primary, err := newPool(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open primary pool: %w", err)
	}
	logger.Println("primary pgxpool initialized")

	var replica *pgxpool.Pool
	if replicaDSN != "" {
		logger.Println("initializing replica pgxpool...")
		replica, err = newPool(ctx, replicaDSN)
		if err != nil {
			primary.Close()
			return nil, fmt.Errorf("open replica pool: %w", err)
		}
		logger.Println("replica pgxpool initialized")
	} else {
		logger.Println("no replica configured, reads go to primary")
	}

	return &PGRepo{primary: primary, replica: replica, schema: schema, logger: logger}, nil
}

func newPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	// Жёсткий потолок на любой statement: зависший запрос не должен
	// держать соединение пула бесконечно.
	cfg.ConnConfig.RuntimeParams["statement_timeout"] =
		fmt.Sprintf("%d", statementTimeout.Milliseconds())
	return pgxpool.NewWithConfig(ctx, cfg)
}

func (r *PGRepo) Close() {
	r.logger.Println("closing pgxpool...")
	r.primary.Close()
	if r.replica != nil {
		r.replica.Close()
	}
	r.logger.Println("pgxpool closed")
}

// qb — билдер с $n-плейсхолдерами под Postgres.
func (r *PGRepo) qb() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func (r *PGRepo) logSQL(op, sqlStr string, args []any) {
	r.logger.Printf("%s sql=%q args=%v", op, sqlStr, args)
}

// ---- Миграции через golang-migrate ----

//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

func runMigrations(dsn string, logger *log.Logger) error {
	// Открываем *sql.DB с помощью pgx stdlib. Важно: это отдельный экземпляр от pgxpool.
	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open pgx: %w", err)
	}
	defer sqldb.Close()

	driver, err := postgres.WithInstance(sqldb, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres driver: %w", err)
	}

	src, err := iofs.New(EmbeddedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate.New: %w", err)
	}
	defer m.Close()

	logger.Println("applying migrations...")
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Println("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Println("migrations applied successfully")
	return nil
}

// ---- Health ----

func (r *PGRepo) Ping(ctx context.Context) error {
	r.logger.Println("pinging database...")
	if err := r.primary.Ping(ctx); err != nil {
		r.logger.Printf("primary ping failed: %v", err)
		return err
	}
	if r.replica != nil {
		if err := r.replica.Ping(ctx); err != nil {
			r.logger.Printf("replica ping failed: %v", err)
			return err
		}
	}
	r.logger.Println("ping successful")
	return nil
}
