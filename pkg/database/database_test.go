package database

import (
	"testing"

	"go-sales-inventory/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSNPrefersDatabaseURL(t *testing.T) {
	cfg := config.Config{DatabaseURL: "postgres://u:p@db:5432/shop"}
	assert.Equal(t, "postgres://u:p@db:5432/shop", postgresDSN(cfg))

	cfg = config.Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "shop", DBPort: "5432", DBSSLMode: "disable", DBTimeZone: "Asia/Jakarta"}
	assert.Equal(t, "host=db user=u password=p dbname=shop port=5432 sslmode=disable TimeZone=Asia/Jakarta", postgresDSN(cfg))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(config.Config{DBDriver: "oracle"}, nil)
	require.Error(t, err)
}

func TestOpenInMemoryMigratesSchema(t *testing.T) {
	db, err := OpenInMemory(t.Name())
	require.NoError(t, err)

	for _, table := range []string{"users", "locations", "products", "salesmen", "customers", "sales", "sale_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
