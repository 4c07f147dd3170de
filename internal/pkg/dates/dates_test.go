package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	in := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)

	got := Normalize(in)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParse(t *testing.T) {
	got, err := Parse("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), got)

	_, err = Parse("03/06/2024")
	assert.Error(t, err)
}

func TestNights(t *testing.T) {
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, Nights(in, in.AddDate(0, 0, 2)))
	assert.Equal(t, 31, Nights(in, in.AddDate(0, 1, 1)))
}

func TestEachIsInclusive(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var days []string
	Each(from, from.AddDate(0, 0, 2), func(day time.Time) {
		days = append(days, Format(day))
	})
	assert.Equal(t, []string{"2024-06-01", "2024-06-02", "2024-06-03"}, days)
}
