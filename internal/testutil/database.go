package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL test database expected at localhost:3306
// (database 'delitrack_test'). The test is skipped when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/delitrack_test"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Orders"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables read by the mysql dataset source.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id VARCHAR(32) NOT NULL PRIMARY KEY,
		sortOrder INT NOT NULL DEFAULT 0,
		customer VARCHAR(150) NOT NULL,
		pickupAddress VARCHAR(255) NOT NULL,
		deliveryAddress VARCHAR(255) NOT NULL,
		orderDate VARCHAR(32) NOT NULL,
		amount DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		items INT NOT NULL DEFAULT 1,
		paymentMethod VARCHAR(64) NOT NULL,
		INDEX idx_sort (sortOrder)
	)`

	if _, err := db.Exec(createOrdersTable); err != nil {
		t.Logf("failed to create table Orders: %v", err)
	}
}
