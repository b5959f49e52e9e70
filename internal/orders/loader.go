package orders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ErrSourceUnavailable marks a load that failed because the source file
// was missing or unreadable. Callers degrade to an empty collection
// rather than failing the request.
var ErrSourceUnavailable = errors.New("source file unavailable")

// Loader reads the dispatch export and normalizes every row into an
// OrderRecord. A single bad row never aborts the load: unparseable
// fields fall back to type-appropriate defaults and the row is kept.
type Loader struct {
	path      string
	delimiter rune
	clock     func() time.Time
}

// LoadResult is the outcome of one full read of the source file.
type LoadResult struct {
	Records []OrderRecord
	// Fallbacks counts fields that failed to parse and were substituted
	// with their default value.
	Fallbacks int
	Duration  time.Duration
}

// NewLoader creates a Loader for the export at path. clock supplies the
// reference instant for age computation; pass nil for wall-clock time.
func NewLoader(path string, delimiter rune, clock func() time.Time) *Loader {
	if clock == nil {
		clock = time.Now
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{path: path, delimiter: delimiter, clock: clock}
}

// Load reads the source file in full and returns the normalized
// collection. A missing or unreadable file returns ErrSourceUnavailable
// with an empty (nil) record slice.
func (l *Loader) Load() (*LoadResult, error) {
	start := time.Now()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, l.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = l.delimiter
	reader.FieldsPerRecord = -1 // rows may be ragged; short rows default per field
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return &LoadResult{Duration: time.Since(start)}, nil
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrSourceUnavailable, err)
	}
	idx := makeHeaderIndex(header)

	ref := l.clock()
	result := &LoadResult{}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line: log and continue, per-row tolerance.
			slog.Warn("skipping malformed source row", "path", l.path, "line", line, "error", err)
			result.Fallbacks++
			continue
		}
		if rowEmpty(row) {
			continue
		}

		rec, fallbacks := l.buildRecord(idx, row, ref)
		result.Fallbacks += fallbacks
		result.Records = append(result.Records, rec)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// buildRecord maps one source row onto the canonical record and derives
// its scheduling metrics. Returns the record and the number of defaulted
// fields.
func (l *Loader) buildRecord(idx headerIndex, row []string, ref time.Time) (OrderRecord, int) {
	fallbacks := 0

	num := func(col string) float64 {
		v := toFloat(idx.get(row, col))
		if !v.Valid {
			if idx.get(row, col) != "" {
				fallbacks++
			}
			return 0
		}
		return v.Float64
	}
	qty := func(col string) int {
		v := toInt(idx.get(row, col))
		if !v.Valid {
			if idx.get(row, col) != "" {
				fallbacks++
			}
			return 0
		}
		return int(v.Int32)
	}

	rec := OrderRecord{
		OrderNum: idx.get(row, colOrderNum),
		ApptSeq:  idx.get(row, colApptSeq),

		OrderStatus:    idx.get(row, colOrderStatus),
		WorkItemStatus: idx.get(row, colWorkItemStatus),
		WorkItemID:     idx.get(row, colWorkItemID),
		SchedReason:    idx.get(row, colSchedReason),
		CurrentStatus:  idx.get(row, colCurrentStatus),

		CustomerName:  idx.get(row, colCustomerName),
		CustomerPhone: idx.get(row, colCustomerPhone),
		CustomerAddr:  idx.get(row, colCustomerAddr),
		CustomerCity:  idx.get(row, colCustomerCity),
		CustomerZip:   idx.get(row, colCustomerZip),

		Appliance:       idx.get(row, colAppliance),
		Manufacturer:    idx.get(row, colManufacturer),
		Model:           idx.get(row, colModel),
		CoverageCode:    idx.get(row, colCoverageCode),
		JobDescription:  idx.get(row, colJobDescription),
		Difficulty:      idx.get(row, colDifficulty),
		ProductCategory: idx.get(row, colProductCategory),
		PlanningArea:    idx.get(row, colPlanningArea),
		District:        idx.get(row, colDistrict),

		AssignedTech: idx.get(row, colAssignedTech),
		RoutedTechs:  idx.get(row, colRoutedTechs),
		ActiveTechs:  idx.get(row, colActiveTechs),

		PartsCost:     num(colPartsCost),
		PartsSell:     num(colPartsSell),
		PartsTax:      num(colPartsTax),
		UnitPrice:     num(colUnitPrice),
		Profitability: idx.get(row, colProfitability),

		PartsOrderedQty:   qty(colPartsOrderedQty),
		PartsInstalledQty: qty(colPartsInstalledQty),
		RecallFlag:        toFlag(idx.get(row, colRecallFlag)),
	}

	// Create date: an absent or unparseable value substitutes the
	// reference instant (age zero) instead of failing the row.
	created := toTimestamp(idx.get(row, colCreateDate))
	if created.Valid {
		rec.CreateDate = created.Time
	} else {
		if idx.get(row, colCreateDate) != "" {
			fallbacks++
		}
		rec.CreateDate = ref
	}

	// Scheduled date: the not-a-time sentinel means "not scheduled",
	// which is an absent value, not an error.
	if sched := toTimestamp(idx.get(row, colSchedDate)); sched.Valid {
		t := sched.Time
		rec.ScheduledDate = &t
	}
	if changed := toTimestamp(idx.get(row, colStatusChangeDate)); changed.Valid {
		t := changed.Time
		rec.StatusChangeDate = &t
	}

	rec.derive(ref)
	return rec, fallbacks
}

// rowEmpty reports whether every cell in the row is blank.
func rowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
