package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"sd-server/models"
)

// ParseShipmentsCSV parses the published shipments feed into daily records.
//
// The feed layout is: date, weekday label, daily total, then one column per
// hour from 0 to 23. Dates arrive in the sheet's locale format ("2025. 2. 1").
// Rows that do not start with such a date (headers, section separators,
// footer notes) are skipped rather than treated as errors, since the sheet
// owners edit it by hand. Records are returned in chronological order.
func ParseShipmentsCSV(csvText string) ([]models.DailyRecord, error) {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("shipments feed is empty")
	}

	var records []models.DailyRecord
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := parseCSVLine(line)
		if len(values) < 3 {
			continue
		}

		date, ok := parseFeedDate(values[0])
		if !ok {
			continue
		}

		record := models.DailyRecord{
			Date:          date,
			DayOfWeek:     values[1],
			ReportedTotal: parseCount(values[2]),
		}
		for hour := 0; hour < models.HoursPerDay; hour++ {
			valueIndex := 3 + hour
			if valueIndex < len(values) {
				record.Hours[hour] = parseCount(values[valueIndex])
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("shipments feed contained no parseable rows")
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// parseCSVLine splits one feed line on commas, honoring quoted fields so
// that grouped numbers like "1,234" stay intact. A doubled quote inside a
// quoted field is an escaped quote. Fields are trimmed.
func parseCSVLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		char := runes[i]
		switch {
		case char == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case char == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

// parseFeedDate normalizes the sheet's dotted date format ("2025. 2. 1")
// to a calendar date. Anything else reports false.
func parseFeedDate(raw string) (time.Time, bool) {
	if !strings.Contains(raw, ".") {
		return time.Time{}, false
	}
	normalized := strings.ReplaceAll(raw, " ", "")
	normalized = strings.Trim(strings.ReplaceAll(normalized, ".", "-"), "-")
	parts := strings.Split(normalized, "-")
	if len(parts) < 3 {
		return time.Time{}, false
	}

	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return time.Time{}, false
	}
	if year < 2000 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseCount reads a cumulative count cell. Grouping commas are stripped;
// anything unparseable (blank cells, dashes) counts as zero, meaning
// "not yet reported".
func parseCount(raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	value, err := strconv.Atoi(cleaned)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
