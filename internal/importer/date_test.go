package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate_DayMonthYear(t *testing.T) {
	got := ParseFlexibleDate("15/06/2025")
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *got)
	}

	got = ParseFlexibleDate("1.2.2024")
	if assert.NotNil(t, got) {
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *got)
	}
}

func TestParseFlexibleDate_RejectsImpossibleCalendarDates(t *testing.T) {
	// 31 February would silently normalize to 2 March without the
	// round-trip check.
	assert.Nil(t, ParseFlexibleDate("31/02/2024"))
	assert.Nil(t, ParseFlexibleDate("31/04/2024"))
	assert.Nil(t, ParseFlexibleDate("00/01/2024"))
}

func TestParseFlexibleDate_LifetimeSentinels(t *testing.T) {
	assert.Nil(t, ParseFlexibleDate("Lifetime"))
	assert.Nil(t, ParseFlexibleDate("LIFETIME"))
	assert.Nil(t, ParseFlexibleDate("valid for life time"))
}

func TestParseFlexibleDate_FallbackLayouts(t *testing.T) {
	got := ParseFlexibleDate("2025-06-15")
	if assert.NotNil(t, got) {
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.June, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	got = ParseFlexibleDate("15 Jun 2025")
	if assert.NotNil(t, got) {
		assert.Equal(t, 15, got.Day())
	}
}

func TestParseFlexibleDate_Malformed(t *testing.T) {
	assert.Nil(t, ParseFlexibleDate(""))
	assert.Nil(t, ParseFlexibleDate("   "))
	assert.Nil(t, ParseFlexibleDate("not a date"))
	assert.Nil(t, ParseFlexibleDate("15-06-20251"))
}
