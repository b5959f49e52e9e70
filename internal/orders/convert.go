package orders

import (
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Timestamp layouts accepted for source date columns, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006 15:04",
	"01/02/2006 15:04",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
}

// notATime is the sentinel the export writes for an absent scheduled date.
// It parses as "absent", never as an error.
const notATime = "nat"

// toTimestamp parses a source date cell into a nullable timestamp.
// Empty cells and the not-a-time sentinel yield Valid: false.
func toTimestamp(s string) pgtype.Timestamp {
	s = strings.TrimSpace(s)
	if s == "" || strings.ToLower(s) == notATime {
		return pgtype.Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Timestamp{Time: t, Valid: true}
		}
	}
	return pgtype.Timestamp{}
}

// toFloat parses a source numeric cell into a nullable float. Currency
// symbols, thousands separators, and accounting-style negatives "(1.50)"
// are tolerated; anything unparseable yields Valid: false.
func toFloat(s string) pgtype.Float8 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Float8{}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: f, Valid: true}
}

// toInt parses a source quantity cell into a nullable integer. The export
// sometimes writes quantities as decimals ("2.0"), so a float fallback is
// applied before giving up.
func toInt(s string) pgtype.Int4 {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Int4{}
	}
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return pgtype.Int4{Int32: int32(i), Valid: true}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return pgtype.Int4{Int32: int32(f), Valid: true}
	}
	return pgtype.Int4{}
}

// toFlag reports whether a source flag cell is truthy.
func toFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "t", "1":
		return true
	default:
		return false
	}
}
