package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMySQLDSN(t *testing.T) {
	assert.Equal(t,
		"app:secret@tcp(db:3306)/afisha?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("app", "secret", "db", "3306", "afisha"))
	assert.Equal(t,
		"app@tcp(db:3306)/afisha?charset=utf8mb4&parseTime=true&loc=UTC",
		MySQLDSN("app", "", "db", "3306", "afisha"))
}

func TestPostgresDSN(t *testing.T) {
	assert.Equal(t,
		"postgres://app:secret@db:5432/afisha?sslmode=disable",
		PostgresDSN("app", "secret", "db", "5432", "afisha"))
}
