package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/foodgram-app/backend/config"
	"github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/logger"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	// Probe the server before handing the DSN to the pool so a down
	// database fails fast with a clear error.
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))

	var conn net.Conn
	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		conn, err = net.DialTimeout("tcp", addr, defaultConnTimeout)
		if err == nil {
			conn.Close()
			break
		}
		slog.Warn("Database not reachable yet, retrying",
			slog.String("type", "db"),
			slog.String("addr", addr),
			slog.Int("attempt", i+1))
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reach database at %s: %w", addr, err)
	}

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg)}, nil
}

func buildConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(cfg config.DBConfig) *bun.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	logger.LogQuery("exec", sql, time.Since(start), err)
	return result, err
}

func (db *DB) QueryWithLog(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.pool.Query(ctx, sql, args...)
	logger.LogQuery("query", sql, time.Since(start), err)
	return rows, err
}

// InitializeSchema creates all required tables, indexes and constraints.
// Tables are created in foreign-key order; constraints that bun's table
// builder cannot express are applied as idempotent DDL afterwards.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Tag)(nil),
		(*models.Ingredient)(nil),
		(*models.Recipe)(nil),
		(*models.RecipeTag)(nil),
		(*models.RecipeIngredient)(nil),
		(*models.Favorite)(nil),
		(*models.ShoppingCart)(nil),
		(*models.Subscription)(nil),
		(*models.AuthToken)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_ingredients_name_unit ON ingredients(name, measurement_unit);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_recipe_ingredients_pair ON recipe_ingredients(recipe_id, ingredient_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_recipe_tags_pair ON recipe_tags(recipe_id, tag_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_favorites_user_recipe ON favorites(user_id, recipe_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_shopping_carts_user_recipe ON shopping_carts(user_id, recipe_id);",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_subscriptions_user_author ON subscriptions(user_id, author_id);",
		"CREATE INDEX IF NOT EXISTS idx_recipes_author_id ON recipes(author_id);",
		"CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe_id ON recipe_ingredients(recipe_id);",
		"CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(name);",
		"CREATE INDEX IF NOT EXISTS idx_auth_tokens_user_id ON auth_tokens(user_id);",
	}
	for _, index := range indexes {
		if _, err := db.ExecWithLog(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	// ADD CONSTRAINT has no IF NOT EXISTS form, hence the DO blocks.
	constraints := []string{
		constraintDDL("subscriptions", "ck_subscriptions_no_self",
			"CHECK (user_id <> author_id)"),
		constraintDDL("recipes", "fk_recipes_author",
			"FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE"),
		constraintDDL("recipe_tags", "fk_recipe_tags_recipe",
			"FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE"),
		constraintDDL("recipe_tags", "fk_recipe_tags_tag",
			"FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE"),
		constraintDDL("recipe_ingredients", "fk_recipe_ingredients_recipe",
			"FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE"),
		constraintDDL("recipe_ingredients", "fk_recipe_ingredients_ingredient",
			"FOREIGN KEY (ingredient_id) REFERENCES ingredients(id) ON DELETE CASCADE"),
		constraintDDL("favorites", "fk_favorites_user",
			"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE"),
		constraintDDL("favorites", "fk_favorites_recipe",
			"FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE"),
		constraintDDL("shopping_carts", "fk_shopping_carts_user",
			"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE"),
		constraintDDL("shopping_carts", "fk_shopping_carts_recipe",
			"FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE"),
		constraintDDL("subscriptions", "fk_subscriptions_user",
			"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE"),
		constraintDDL("subscriptions", "fk_subscriptions_author",
			"FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE"),
		constraintDDL("auth_tokens", "fk_auth_tokens_user",
			"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE"),
	}
	for _, ddl := range constraints {
		if _, err := db.ExecWithLog(ctx, ddl); err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.Int("tables", len(tables)))
	return nil
}

func constraintDDL(table, name, definition string) string {
	return fmt.Sprintf(
		"DO $$ BEGIN ALTER TABLE %s ADD CONSTRAINT %s %s; EXCEPTION WHEN duplicate_object THEN NULL; END $$;",
		table, name, definition,
	)
}
