package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	_ "github.com/go-sql-driver/mysql"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Database struct {
	dbName      string
	MysqlClient *sql.DB
}

func NewDatabase(client *sql.DB, dbName string) (*Database, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name is empty")
	}
	return &Database{
		dbName:      dbName,
		MysqlClient: client,
	}, nil
}

// Open connects to the server behind dsn and checks it answers. The
// database itself is created by Migrate.
func Open(dsn string, dbName string) (*Database, error) {
	client, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if err := client.Ping(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	database, err := NewDatabase(client, dbName)
	if err != nil {
		client.Close()
		return nil, err
	}
	return database, nil
}

// Migrate selects the database, creating it if needed, and applies every
// embedded migration in file name order. It returns the applied file names.
func (d *Database) Migrate() ([]string, error) {
	if _, err := d.MysqlClient.Exec(`CREATE DATABASE IF NOT EXISTS ` + d.dbName); err != nil {
		return nil, fmt.Errorf("failed to create db %s: %w", d.dbName, err)
	}

	if _, err := d.MysqlClient.Exec(`USE ` + d.dbName); err != nil {
		return nil, fmt.Errorf("failed to use db %s: %w", d.dbName, err)
	}

	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	applied := make([]string, 0, len(entries))
	for _, e := range entries {
		c, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return applied, err
		}

		if _, err := d.MysqlClient.Exec(string(c)); err != nil {
			return applied, fmt.Errorf("migration %s: %w", e.Name(), err)
		}
		applied = append(applied, e.Name())
	}

	return applied, nil
}
