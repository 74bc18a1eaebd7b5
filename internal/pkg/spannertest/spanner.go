// Package spannertest connects tests to the Spanner emulator.
package spannertest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/models/m_cart"
)

// DefaultDatabase is used when STOREFRONT_TEST_SPANNER_DATABASE is unset.
const DefaultDatabase = "projects/test-project/instances/test-instance/databases/storefront-test"

// Setup returns a client for the test database, cleaned before and after
// the test. Tests are skipped when SPANNER_EMULATOR_HOST is not set.
func Setup(t *testing.T) *spanner.Client {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set; skipping Spanner test")
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, Database())
	require.NoError(t, err, "failed to create Spanner client")

	CleanDatabase(t, client)
	t.Cleanup(func() {
		CleanDatabase(t, client)
		client.Close()
	})

	return client
}

// Database returns the test database path.
func Database() string {
	if db := os.Getenv("STOREFRONT_TEST_SPANNER_DATABASE"); db != "" {
		return db
	}
	return DefaultDatabase
}

// CleanDatabase truncates every table.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_cart.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	iter := client.Single().Query(context.Background(), spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	})
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
