package db

import (
	"fmt"
	"net/url"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/M1estere/To-Do-API/internal/config"
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	dsn, err := buildDSN(conf)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(conf.DbDriver, dsn)
	if err != nil {
		return nil, err
	}

	if conf.DbDriver == config.DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

func buildDSN(conf *config.Config) (string, error) {
	switch conf.DbDriver {
	case config.DriverMySQL:
		params := conf.DbParams
		if params == "" {
			params = "parseTime=true&multiStatements=true"
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			conf.DbUser,
			conf.DbPassword,
			conf.DbHost,
			conf.DbPort,
			conf.DbName,
			params,
		), nil
	case config.DriverPostgres:
		dsn := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(conf.DbUser, conf.DbPassword),
			Host:     conf.DbHost + ":" + conf.DbPort,
			Path:     "/" + conf.DbName,
			RawQuery: conf.DbParams,
		}
		return dsn.String(), nil
	case config.DriverSQLite:
		if conf.SqlitePath == "" {
			return ":memory:", nil
		}
		return "file:" + conf.SqlitePath + "?_foreign_keys=on", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
}
