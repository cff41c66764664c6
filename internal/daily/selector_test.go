package daily

import (
	"strconv"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in   time.Time
		want int
	}{
		{date(2026, time.October, 17), 10172026},
		{date(2023, time.January, 1), 1012023},
		{date(2099, time.December, 31), 12312099},
		{date(2024, time.February, 14), 2142024},
	}
	for _, tt := range tests {
		if got := Encode(tt.in); got != tt.want {
			t.Errorf("Encode(%s) = %d, want %d", tt.in.Format(time.DateOnly), got, tt.want)
		}
	}
}

func TestIdentifierFor(t *testing.T) {
	tests := []struct {
		encoded int
		want    Identifier
	}{
		{10172026, 1248},
		{10182026, 1241},
		{1012023, 791},
		{12312099, 121},
		{1012000, 669},
		{2142024, 2304},
	}
	for _, tt := range tests {
		if got := IdentifierFor(tt.encoded); got != tt.want {
			t.Errorf("IdentifierFor(%d) = %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestIdentifierStaysInRange(t *testing.T) {
	day := date(2020, time.January, 1)
	for range 3 * 366 {
		id := IdentifierFor(Encode(day))
		if id < 0 || id >= Modulus {
			t.Fatalf("identifier %d for %s out of range", id, day.Format(time.DateOnly))
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestSelectorIsDeterministic(t *testing.T) {
	s := NewSelector(time.UTC)
	d := date(2026, time.October, 17)

	first := s.Identifier(&d)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.Identifier(&d); got != first {
				t.Errorf("identifier changed: %d != %d", got, first)
			}
		}()
	}
	wg.Wait()
}

func TestSelectorDefaultsToToday(t *testing.T) {
	s := Selector{
		Now:      func() time.Time { return time.Date(2026, time.October, 17, 23, 30, 0, 0, time.UTC) },
		Location: time.UTC,
	}
	require.Equal(t, Identifier(1248), s.Identifier(nil))
	require.Equal(t, date(2026, time.October, 17), s.Today())

	// The same instant is already the 18th in Paris.
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	s.Location = paris
	require.Equal(t, Identifier(1241), s.Identifier(nil))
}

func TestSelectorIgnoresTimeOfDay(t *testing.T) {
	s := NewSelector(time.UTC)
	morning := time.Date(2026, time.October, 17, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.October, 17, 22, 0, 0, 0, time.UTC)
	require.Equal(t, s.Identifier(&morning), s.Identifier(&evening))
}

func TestParseDate(t *testing.T) {
	iso, err := ParseDate("2026-10-17", time.UTC)
	require.NoError(t, err)
	require.Equal(t, date(2026, time.October, 17), iso)

	legacy, err := ParseDate("10172026", time.UTC)
	require.NoError(t, err)
	require.Equal(t, iso, legacy)

	tests := []struct {
		value string
		want  time.Time
	}{
		{"1012023", date(2023, time.January, 1)},
		{"01012023", date(2023, time.January, 1)},
		{"2142024", date(2024, time.February, 14)},
		{" 9302025 ", date(2025, time.September, 30)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.value, time.UTC)
		require.NoError(t, err, tt.value)
		require.Equal(t, tt.want, got, tt.value)
	}

	// Encode output always parses back to the same day.
	for _, d := range []time.Time{date(2023, time.January, 1), date(2099, time.December, 31)} {
		got, err := ParseDate(strconv.Itoa(Encode(d)), time.UTC)
		require.NoError(t, err)
		require.Equal(t, d, got)
	}

	for _, bad := range []string{"", "17/10/2026", "2026-13-01", "13012026", "1322023", "+101202", "123456", "abc"} {
		if _, err := ParseDate(bad, time.UTC); err == nil {
			t.Errorf("ParseDate(%q): expected error", bad)
		}
	}
}
