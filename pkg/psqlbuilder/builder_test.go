package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDriver_Placeholders(t *testing.T) {
	query, args, err := ForDriver("postgres").Select("id").From("bookings").
		Where(squirrel.Eq{"user_id": "u1", "status": "upcoming"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE status = $1 AND user_id = $2", query)
	assert.Equal(t, []interface{}{"upcoming", "u1"}, args)

	query, _, err = ForDriver("sqlite").Select("id").From("bookings").
		Where(squirrel.Eq{"user_id": "u1"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE user_id = ?", query)
}

func TestForDriver_RowLocks(t *testing.T) {
	assert.True(t, ForDriver("postgres").RowLocks)
	assert.False(t, ForDriver("sqlite").RowLocks)
	assert.False(t, ForDriver("sqlite3").RowLocks)
}
