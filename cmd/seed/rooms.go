package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hotelpms/internal/domain"
	"hotelpms/internal/domain/room"
)

const roomsSheet = "Rooms"

// roomRow is one line of the room import sheet, keyed by hotel slug.
type roomRow struct {
	HotelSlug string
	Request   room.CreateRoomRequest
}

// loadRoomSheet reads the "Rooms" sheet of an XLSX file. The first row is a
// header; columns are matched by name so their order does not matter.
func loadRoomSheet(path string) ([]roomRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(roomsSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", roomsSheet, err)
	}
	return parseRoomRows(rows)
}

func parseRoomRows(rows [][]string) ([]roomRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", roomsSheet)
	}

	header := rows[0]
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"hotel", "number", "type", "capacity", "price"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]roomRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		if cell(row, "number") == "" {
			continue
		}

		capacity, err := strconv.Atoi(cell(row, "capacity"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid capacity %q", line, cell(row, "capacity"))
		}
		price, err := decimal.NewFromString(cell(row, "price"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", line, cell(row, "price"))
		}
		floor := 0
		if raw := cell(row, "floor"); raw != "" {
			if floor, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("row %d: invalid floor %q", line, raw)
			}
		}

		out = append(out, roomRow{
			HotelSlug: cell(row, "hotel"),
			Request: room.CreateRoomRequest{
				Number:      cell(row, "number"),
				RoomType:    domain.RoomType(strings.ToLower(cell(row, "type"))),
				Capacity:    capacity,
				Price:       price,
				Floor:       floor,
				Description: cell(row, "description"),
			},
		})
	}
	return out, nil
}
