package storefront

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type sqlVault struct {
	db         *sql.DB
	table      string
	driverName string
	prefix     string
	key        string
}

var sqlIdentPartRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func newSQLVault(cfg VaultConfig) (Vault, error) {
	if cfg.SQLDriverName == "" || cfg.SQLDSN == "" {
		return nil, errors.New("sql vault requires driver name and dsn")
	}
	db, err := sql.Open(cfg.SQLDriverName, cfg.SQLDSN)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := validateSQLTableName(cfg.SQLTable); err != nil {
		return nil, err
	}
	v := &sqlVault{
		db:         db,
		table:      cfg.SQLTable,
		driverName: cfg.SQLDriverName,
		prefix:     cfg.Prefix,
		key:        cfg.Key,
	}
	if err := v.ensureSchema(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *sqlVault) Driver() VaultDriver { return VaultSQL }

func (v *sqlVault) ensureSchema() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		k VARCHAR(191) PRIMARY KEY,
		v TEXT NOT NULL
	)`, v.table)
	if v.driverName == "sqlite" || v.driverName == "pgx" || v.driverName == "postgres" {
		stmt = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		)`, v.table)
	}
	_, err := v.db.Exec(stmt)
	return err
}

func (v *sqlVault) Load(ctx context.Context) (string, bool, error) {
	query := fmt.Sprintf(`SELECT v FROM %s WHERE k = %s`, v.table, v.placeholder(1))
	var token string
	err := v.db.QueryRowContext(ctx, query, v.vaultKey()).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, token != "", nil
}

func (v *sqlVault) Store(ctx context.Context, token string) error {
	var stmt string
	switch v.driverName {
	case "mysql":
		stmt = fmt.Sprintf(`INSERT INTO %s (k, v) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE v = VALUES(v)`, v.table)
	case "pgx", "postgres":
		stmt = fmt.Sprintf(`INSERT INTO %s (k, v) VALUES ($1, $2)
			ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v`, v.table)
	default:
		stmt = fmt.Sprintf(`INSERT INTO %s (k, v) VALUES (?, ?)
			ON CONFLICT (k) DO UPDATE SET v = excluded.v`, v.table)
	}
	_, err := v.db.ExecContext(ctx, stmt, v.vaultKey(), token)
	return err
}

func (v *sqlVault) Clear(ctx context.Context) error {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE k = %s`, v.table, v.placeholder(1))
	_, err := v.db.ExecContext(ctx, stmt, v.vaultKey())
	return err
}

func (v *sqlVault) placeholder(n int) string {
	if v.driverName == "pgx" || v.driverName == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (v *sqlVault) vaultKey() string {
	if v.prefix == "" {
		return v.key
	}
	return v.prefix + ":" + v.key
}

func validateSQLTableName(table string) error {
	for _, part := range strings.Split(table, ".") {
		if !sqlIdentPartRE.MatchString(part) {
			return fmt.Errorf("invalid sql table name %q", table)
		}
	}
	return nil
}
