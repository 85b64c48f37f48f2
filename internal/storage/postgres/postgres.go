package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/zourdycodes/authworkflow/internal/config"
	"github.com/zourdycodes/authworkflow/internal/models"
	"github.com/zourdycodes/authworkflow/internal/storage"
	"github.com/zourdycodes/authworkflow/internal/storage/postgres/migrations"
)

const uniqueViolationCode = "23505"

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg *config.Config) (*PostgresRepo, error) {
	const op = "storage.postgres.New"

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return &PostgresRepo{pool: pool}, nil
}

// RunMigrations applies the embedded schema migrations. goose works over
// database/sql, so it gets its own short-lived connection.
func RunMigrations(ctx context.Context, cfg *config.Config) error {
	const op = "storage.postgres.RunMigrations"

	db, err := sql.Open("pgx", dsn(cfg))
	if err != nil {
		return fmt.Errorf("%s: failed to open database: %w", op, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to apply migrations: %w", op, err)
	}

	return nil
}

func (r *PostgresRepo) SaveAccount(ctx context.Context, name, email string, passHash []byte) (int64, error) {
	const op = "storage.postgres.SaveAccount"

	query := `
		INSERT INTO accounts (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id;
	`

	var id int64

	err := r.pool.QueryRow(ctx, query, name, email, string(passHash)).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, storage.ErrAccountExists
		}

		return 0, fmt.Errorf("%s: failed to save account: %w", op, err)
	}

	return id, nil
}

func (r *PostgresRepo) AccountByEmail(ctx context.Context, email string) (models.Account, error) {
	query := `
		SELECT id, name, email, password_hash
		FROM accounts
		WHERE email = $1;
	`

	row := r.pool.QueryRow(ctx, query, email)

	var acc models.Account
	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Email,
		&acc.PassHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrAccountNotFound
		}

		return models.Account{}, err
	}

	return acc, nil
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}

func dsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
