package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/HerbHall/chipmatch/pkg/models"
)

// CSV columns. Specification columns carry the "feat." prefix used by
// the feature-engineered dataset this tool was first fed from.
const (
	colName     = "processor_name"
	colModel    = "model"
	colCategory = "category"
	colFamily   = "family"
	colSegment  = "feat.vertical_segment"
	featPrefix  = "feat."
)

// csvHeaders returns the CSV column headers in write order.
func csvHeaders() []string {
	headers := []string{colName, colModel, colCategory, colFamily, colSegment}
	for _, f := range models.Fields() {
		headers = append(headers, featPrefix+f.String())
	}
	return headers
}

// processorToCSVRow converts a record to a CSV row (matching csvHeaders order).
func processorToCSVRow(p *models.Processor) []string {
	row := []string{p.Name, p.Model, p.Category, string(p.Family), string(p.Segment)}
	for _, f := range models.Fields() {
		row = append(row, strconv.FormatFloat(p.Value(f), 'f', -1, 64))
	}
	return row
}

func encodeCSV(w io.Writer, records []models.Processor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range records {
		if err := cw.Write(processorToCSVRow(&records[i])); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeCSV(r io.Reader) ([]models.Processor, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv dataset is empty (no header row)")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	if err := checkRequiredColumns(index); err != nil {
		return nil, err
	}

	records := make([]models.Processor, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("csv row %d has %d columns, expected %d", i+2, len(row), len(rows[0]))
		}
		p, err := csvRowToProcessor(index, row)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		records = append(records, p)
	}
	fillDefaults(records)
	return records, nil
}

func checkRequiredColumns(index map[string]int) error {
	if _, ok := index[colName]; !ok {
		return fmt.Errorf("csv dataset missing required column %q", colName)
	}
	for _, f := range models.StoredFields() {
		if f.Spec().Optional {
			continue
		}
		if _, ok := index[featPrefix+f.String()]; !ok {
			return fmt.Errorf("csv dataset missing required column %q", featPrefix+f.String())
		}
	}
	return nil
}

// csvRowToProcessor parses one row. Columns absent from the header leave
// the field at its zero value, which is the unknown sentinel for
// optional fields and fails validation for required ones.
func csvRowToProcessor(index map[string]int, row []string) (models.Processor, error) {
	cell := func(col string) string {
		if i, ok := index[col]; ok {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	p := models.Processor{
		Name:     cell(colName),
		Model:    cell(colModel),
		Category: cell(colCategory),
		Segment:  models.Segment(cell(colSegment)),
	}
	if fam := cell(colFamily); fam != "" {
		f, ok := models.ParseFamily(fam)
		if !ok {
			return models.Processor{}, fmt.Errorf("unknown family %q", fam)
		}
		p.Family = f
	}

	for _, f := range models.StoredFields() {
		raw := cell(featPrefix + f.String())
		if raw == "" {
			continue
		}
		v, err := parseQuantity(raw, f.Spec().Unit)
		if err != nil {
			return models.Processor{}, fmt.Errorf("%s: %w", f, err)
		}
		p = p.With(f, v)
	}
	return p, nil
}

// unitScale converts an input unit suffix to the field's canonical unit.
var unitScale = map[string]map[string]float64{
	"GHz": {"ghz": 1, "mhz": 0.001},
	"MB":  {"mb": 1, "kb": 1.0 / 1024, "gb": 1024},
	"GB":  {"gb": 1, "mb": 1.0 / 1024, "tb": 1024},
	"W":   {"w": 1},
	"nm":  {"nm": 1},
	"USD": {"usd": 1, "$": 1},
}

// parseQuantity parses a number with an optional unit suffix such as
// "2400 MHz" or "$1,299" and converts it to the canonical unit, so that
// equal quantities compare equal regardless of how they were written.
func parseQuantity(raw, canonical string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	s = strings.TrimPrefix(s, "$")
	if strings.EqualFold(s, "n/a") || s == "-" {
		return 0, nil
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E')
	})
	num, unit := s, ""
	if end >= 0 {
		num, unit = strings.TrimSpace(s[:end]), strings.ToLower(strings.TrimSpace(s[end:]))
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	if unit == "" {
		return v, nil
	}
	scale, ok := unitScale[canonical][unit]
	if !ok {
		return 0, fmt.Errorf("unit %q not convertible to %s", unit, canonicalOrCount(canonical))
	}
	return v * scale, nil
}

func canonicalOrCount(unit string) string {
	if unit == "" {
		return "a count"
	}
	return unit
}

// modelFromName picks the model number out of a product name: the last
// token containing a digit, e.g. "i7-13700" or "185H".
func modelFromName(name string) string {
	tokens := strings.Fields(models.StripTrademarks(name))
	for i := len(tokens) - 1; i >= 0; i-- {
		if strings.ContainsFunc(tokens[i], unicode.IsDigit) {
			return tokens[i]
		}
	}
	return ""
}

// fillDefaults derives a blank family or model number from the name.
func fillDefaults(records []models.Processor) {
	for i := range records {
		if records[i].Family == "" {
			if f, ok := models.ClassifyFamily(records[i].Name); ok {
				records[i].Family = f
			}
		}
		if records[i].Model == "" {
			records[i].Model = modelFromName(records[i].Name)
		}
	}
}
