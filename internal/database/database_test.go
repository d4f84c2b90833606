package database

import (
	"testing"

	"gorm.io/gorm/logger"
)

func TestMaintenanceDSN(t *testing.T) {
	tests := []struct {
		dsn    string
		name   string
		master string
		ok     bool
	}{
		{"postgres://u:p@localhost:5432/brandforge?sslmode=disable", "brandforge", "postgres://u:p@localhost:5432/postgres?sslmode=disable", true},
		{"postgresql://localhost/app", "app", "postgresql://localhost/postgres", true},
		{"postgres://localhost/postgres", "", "", false},
		{"postgres://localhost", "", "", false},
		{"host=localhost dbname=app", "", "", false},
	}

	for _, tt := range tests {
		name, master, ok := maintenanceDSN(tt.dsn)
		if name != tt.name || master != tt.master || ok != tt.ok {
			t.Errorf("maintenanceDSN(%q) = %q, %q, %v", tt.dsn, name, master, ok)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("INFO") != logger.Info {
		t.Error("expected info level")
	}
	if parseLogLevel("") != logger.Warn {
		t.Error("expected warn by default")
	}
}
