package config

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/migrate"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteProvider implements ConfigProvider for SQLite database configuration.
// Unlike the YAML provider it can persist parameter changes made through the API.
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens (or creates) the database at dbPath and brings its schema up
// to date
func NewSQLiteProvider(dbPath string, logger *zap.SugaredLogger) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate.NewMigrator(db, migrate.NewFSProvider(sub, ""), logger).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	params, err := s.GetParameters()
	if err != nil {
		return nil, err
	}

	rest, err := s.getRESTServer()
	if err != nil {
		return nil, err
	}

	return &ConfigData{
		Parameters: params,
		RESTServer: rest,
	}, nil
}

// GetParameters returns the stored model parameters, or the defaults if none were saved
func (s *SQLiteProvider) GetParameters() (intrusion.Parameters, error) {
	var p intrusion.Parameters
	err := s.db.QueryRow(`
		SELECT aquifer_width, porosity, extraction_cutoff_elevation
		FROM parameters
		WHERE id = 1
	`).Scan(&p.AquiferWidth, &p.Porosity, &p.ExtractionCutoffElevation)
	if err == sql.ErrNoRows {
		return intrusion.DefaultParameters(), nil
	}
	if err != nil {
		return p, fmt.Errorf("failed to query parameters: %w", err)
	}
	return p, nil
}

// UpdateParameters validates and stores new model parameters
func (s *SQLiteProvider) UpdateParameters(p intrusion.Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO parameters (id, aquifer_width, porosity, extraction_cutoff_elevation, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			aquifer_width = excluded.aquifer_width,
			porosity = excluded.porosity,
			extraction_cutoff_elevation = excluded.extraction_cutoff_elevation,
			updated_at = excluded.updated_at
	`, p.AquiferWidth, p.Porosity, p.ExtractionCutoffElevation)
	if err != nil {
		return fmt.Errorf("failed to update parameters: %w", err)
	}
	return nil
}

func (s *SQLiteProvider) getRESTServer() (RESTServerData, error) {
	var rest RESTServerData
	var cert, key, listenAddr sql.NullString
	var port, maxUpload sql.NullInt64

	err := s.db.QueryRow(`
		SELECT tls_cert, tls_key, port, listen_addr, max_upload_bytes
		FROM rest_server
		WHERE id = 1
	`).Scan(&cert, &key, &port, &listenAddr, &maxUpload)
	if err == sql.ErrNoRows {
		return rest, nil
	}
	if err != nil {
		return rest, fmt.Errorf("failed to query REST server config: %w", err)
	}

	// Convert nullable fields to zero values if NULL
	if cert.Valid {
		rest.Cert = cert.String
	}
	if key.Valid {
		rest.Key = key.String
	}
	if port.Valid {
		rest.Port = int(port.Int64)
	}
	if listenAddr.Valid {
		rest.ListenAddr = listenAddr.String
	}
	if maxUpload.Valid {
		rest.MaxUploadBytes = maxUpload.Int64
	}

	return rest, nil
}

// UpdateRESTServer stores the HTTP server options
func (s *SQLiteProvider) UpdateRESTServer(rest RESTServerData) error {
	_, err := s.db.Exec(`
		INSERT INTO rest_server (id, tls_cert, tls_key, port, listen_addr, max_upload_bytes)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			tls_cert = excluded.tls_cert,
			tls_key = excluded.tls_key,
			port = excluded.port,
			listen_addr = excluded.listen_addr,
			max_upload_bytes = excluded.max_upload_bytes
	`, nullString(rest.Cert), nullString(rest.Key), nullInt(int64(rest.Port)), nullString(rest.ListenAddr), nullInt(rest.MaxUploadBytes))
	if err != nil {
		return fmt.Errorf("failed to update REST server config: %w", err)
	}
	return nil
}

// IsReadOnly returns false for SQLite provider
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}
