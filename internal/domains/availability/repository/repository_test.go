package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"floorplan/infras/otel/mocks"
	"floorplan/infras/postgres"
	"floorplan/internal/domains/availability/model"
	reservationModel "floorplan/internal/domains/reservation/model"
	"floorplan/internal/domains/shift"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var midday = shift.Window{Start: shift.NewClock(0, 0, 0), End: shift.NewClock(17, 0, 0)}

func TestBind(t *testing.T) {
	tests := []struct {
		name   string
		callID string
	}{
		{name: "caller holding a call", callID: "call-8f2a91"},
		{name: "no caller", callID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := bind(Query{Date: "2026-10-18", Window: midday, PartySize: 3, CallID: tt.callID})
			require.NoError(t, err)

			assert.NotContains(t, query, "?")
			assert.NotContains(t, query, ":call_id")
			assert.Contains(t, query, "t.capacity >= $1")
			assert.Contains(t, query, "r.status IN ($5, $6, $7)")
			assert.Contains(t, query, "CAST($8 AS TEXT) = '' OR r.call_id <> $9")
			assert.Contains(t, query, "ORDER BY t.capacity, LENGTH(t.code), t.code")

			assert.Equal(t, []any{
				3, "2026-10-18", "00:00:00", "17:00:00",
				reservationModel.StatusReserved, reservationModel.StatusOccupied, reservationModel.StatusBlocked,
				tt.callID, tt.callID,
			}, args)
		})
	}
}

// openTestDB connects to FLOORPLAN_TEST_POSTGRES_DSN inside a throwaway schema
// holding the tables and reservations migrations.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("FLOORPLAN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("FLOORPLAN_TEST_POSTGRES_DSN not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	// one connection so search_path sticks
	db.SetMaxOpenConns(1)

	schema := "availability_" + strings.ReplaceAll(strings.ToLower(t.Name()), "/", "_")

	db.MustExec("DROP SCHEMA IF EXISTS " + schema + " CASCADE")
	db.MustExec("CREATE SCHEMA " + schema)
	db.MustExec("SET search_path TO " + schema)

	t.Cleanup(func() {
		db.MustExec("DROP SCHEMA IF EXISTS " + schema + " CASCADE")
		db.Close()
	})

	for _, file := range []string{"000001_create_tables_table.up.sql", "000002_create_reservations_table.up.sql"} {
		ddl, err := os.ReadFile("../../../../migrations/postgres/" + file)
		require.NoError(t, err)

		db.MustExec(string(ddl))
	}

	return db
}

func seed(t *testing.T, db *sqlx.DB) {
	t.Helper()

	tables := []struct {
		code     string
		capacity int
		active   bool
	}{
		{"T1", 2, true},
		{"T2", 4, true},
		{"T3", 4, true},
		{"T4", 6, false},
		{"T5", 8, true},
		{"T9", 4, true},
		{"T10", 4, true},
	}

	for _, tb := range tables {
		db.MustExec(`INSERT INTO tables (id, code, name, capacity, active) VALUES ($1, $2, $3, $4, $5)`,
			"id-"+tb.code, tb.code, "Mesa "+tb.code, tb.capacity, tb.active)
	}

	reservations := []struct {
		id, table, clock, shift, status string
		callID                          any
	}{
		{"RESTA100100", "T2", "13:00:00", "midday", "reserved", nil},
		{"BLOCKcall-X123", "T3", "13:30:00", "midday", "blocked", "call-X"},
		{"RESTA200200", "T10", "20:00:00", "evening", "reserved", nil},
		{"RESTA300300", "T5", "14:00:00", "midday", "cancelled", nil},
	}

	for _, r := range reservations {
		db.MustExec(`INSERT INTO reservations (id, table_code, reservation_date, reservation_time, shift, status, call_id)
			VALUES ($1, $2, '2026-10-18', $3, $4, $5, $6)`, r.id, r.table, r.clock, r.shift, r.status, r.callID)
	}
}

func TestFindAvailable_Postgres(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	repo := New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel())

	codes := func(tables []model.AvailableTable) []string {
		out := make([]string, 0, len(tables))
		for _, tb := range tables {
			out = append(out, tb.Code)
		}

		return out
	}

	tests := []struct {
		name      string
		partySize int
		callID    string
		want      []string
	}{
		{name: "no caller sees the hold as taken", partySize: 3, want: []string{"T9", "T10", "T5"}},
		{name: "the holding call sees its own table", partySize: 3, callID: "call-X", want: []string{"T3", "T9", "T10", "T5"}},
		{name: "another call does not", partySize: 3, callID: "call-Y", want: []string{"T9", "T10", "T5"}},
		{name: "capacity is never below the party size", partySize: 5, want: []string{"T5"}},
		{name: "small party", partySize: 1, want: []string{"T1", "T9", "T10", "T5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := repo.FindAvailable(context.Background(), Query{
				Date: "2026-10-18", Window: midday, PartySize: tt.partySize, CallID: tt.callID,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(tables))

			for _, tb := range tables {
				assert.GreaterOrEqual(t, tb.Capacity, tt.partySize)
			}
		})
	}
}
