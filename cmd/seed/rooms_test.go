package main

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hotelpms/internal/domain"
)

func TestParseRoomRows(t *testing.T) {
	rows := [][]string{
		{"Number", "Hotel", "Type", "Capacity", "Price", "Floor"},
		{"101", "hotel-sol", "Double", "2", "85.50", "1"},
		{"", "hotel-sol"},
		{"201", "hotel-luna", "suite", "4", "190"},
	}

	got, err := parseRoomRows(rows)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "hotel-sol", got[0].HotelSlug)
	assert.Equal(t, domain.RoomDouble, got[0].Request.RoomType)
	assert.True(t, got[0].Request.Price.Equal(decimal.RequireFromString("85.50")))
	assert.Equal(t, 1, got[0].Request.Floor)
	assert.Equal(t, 0, got[1].Request.Floor)
}

func TestParseRoomRowsErrors(t *testing.T) {
	_, err := parseRoomRows(nil)
	assert.Error(t, err)

	_, err = parseRoomRows([][]string{{"hotel", "number"}})
	assert.ErrorContains(t, err, "missing column")

	_, err = parseRoomRows([][]string{
		{"hotel", "number", "type", "capacity", "price"},
		{"hotel-sol", "101", "double", "two", "80"},
	})
	assert.ErrorContains(t, err, "row 2")
}

func TestLoadRoomSheet(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet(roomsSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(roomsSheet, "A1", &[]any{"hotel", "number", "type", "capacity", "price"}))
	require.NoError(t, f.SetSheetRow(roomsSheet, "A2", &[]any{"hotel-sol", "101", "single", 1, "60"}))

	path := filepath.Join(t.TempDir(), "rooms.xlsx")
	require.NoError(t, f.SaveAs(path))

	got, err := loadRoomSheet(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "101", got[0].Request.Number)
	assert.Equal(t, 1, got[0].Request.Capacity)
}
