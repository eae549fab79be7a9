package tariff

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ===============================
// Day-type buckets
// ===============================

// DayType keys the tariff schedule. The names match the keys of the
// tariff JSON file.
type DayType string

const (
	DayMonThu DayType = "Senin - Kamis"
	DayFri    DayType = "Jumat"
	DaySat    DayType = "Sabtu"
	DaySun    DayType = "Minggu"
)

// Classify maps a calendar date to its tariff bucket.
func Classify(date time.Time) DayType {
	switch date.Weekday() {
	case time.Friday:
		return DayFri
	case time.Saturday:
		return DaySat
	case time.Sunday:
		return DaySun
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		return DayMonThu
	}
	return DayMonThu
}

// ===============================
// Schedule
// ===============================

// Entry is one tariff block: a half-open [Start, End) window in minutes
// from midnight and the price of the whole block.
type Entry struct {
	Label string `json:"jam"`
	Start int    `json:"-"`
	End   int    `json:"-"`
	Price int    `json:"harga"`
}

type Schedule struct {
	buckets map[DayType][]Entry
}

func Empty() *Schedule {
	return &Schedule{buckets: map[DayType][]Entry{}}
}

// Load reads the tariff JSON file. A missing or malformed file yields an
// empty schedule (nothing bookable) instead of failing startup.
func Load(path string) *Schedule {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("tariff: cannot read %s: %v (schedule empty)", path, err)
		return Empty()
	}

	s, err := Parse(data)
	if err != nil {
		log.Printf("tariff: cannot parse %s: %v (schedule empty)", path, err)
		return Empty()
	}

	return s
}

type rawEntry struct {
	Jam   string `json:"jam"`
	Harga int    `json:"harga"`
}

func Parse(data []byte) (*Schedule, error) {
	var raw map[string][]rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	s := Empty()
	for _, dt := range []DayType{DayMonThu, DayFri, DaySat, DaySun} {
		for _, re := range raw[string(dt)] {
			start, end, err := parseRange(re.Jam)
			if err != nil {
				log.Printf("tariff: skipping %q entry %q: %v", dt, re.Jam, err)
				continue
			}
			s.buckets[dt] = append(s.buckets[dt], Entry{
				Label: re.Jam,
				Start: start,
				End:   end,
				Price: re.Harga,
			})
		}
	}

	return s, nil
}

func (s *Schedule) Entries(dt DayType) []Entry {
	return s.buckets[dt]
}

func (s *Schedule) IsEmpty() bool {
	for _, entries := range s.buckets {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// ===============================
// Time parsing
// ===============================

// parseRange parses a tariff label like "16.00 - 18.00" into minutes
// from midnight. The file uses dots as the hour separator.
func parseRange(label string) (start, end int, err error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range %q", label)
	}

	start, err = ParseClock(strings.ReplaceAll(strings.TrimSpace(parts[0]), ".", ":"))
	if err != nil {
		return 0, 0, err
	}

	end, err = ParseClock(strings.ReplaceAll(strings.TrimSpace(parts[1]), ".", ":"))
	if err != nil {
		return 0, 0, err
	}

	if end <= start {
		return 0, 0, fmt.Errorf("empty range %q", label)
	}

	return start, end, nil
}

// ParseClock parses "HH:MM" (24h) into minutes from midnight.
func ParseClock(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q", hm)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute %q", hm)
	}

	return h*60 + m, nil
}
