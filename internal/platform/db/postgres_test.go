package db

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// A lock-waiting FOR UPDATE must re-read the row it finally locks. Under
// RepeatableRead the loser of a concurrent stock write would abort with
// SQLSTATE 40001 instead of reaching the insufficient-stock check.
func TestTxOptionsReadCommitted(t *testing.T) {
	require.Equal(t, pgx.ReadCommitted, TxOptions().IsoLevel)
}
