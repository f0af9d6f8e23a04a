package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ImportStats summarizes one CSV import.
type ImportStats struct {
	Read    int
	Skipped int
	Saved   int
}

var columnAliases = map[string][]string{
	"name":        {"name", "card_name"},
	"mana_cost":   {"mana_cost", "mana_costs", "manacost"},
	"types":       {"types", "type", "card_type"},
	"power":       {"power"},
	"toughness":   {"toughness"},
	"supertypes":  {"supertypes", "legendary"},
	"oracle_text": {"oracle_text", "rules", "rules_text", "text"},
}

// Importer reads card exports into a store.
type Importer struct {
	store  Store
	parser *OracleParser
	logger *zap.Logger
}

// NewImporter creates an importer writing to store. Rows are checked with
// BuildCard before saving, so the parser must be the one games will use.
func NewImporter(store Store, parser *OracleParser, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, parser: parser, logger: logger}
}

// Import reads a CSV with a header row. Columns are found by name; rows
// that cannot become a card are skipped with a warning.
func (im *Importer) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	var stats ImportStats
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("csv has no header row")
		}
		return stats, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return stats, err
	}

	var recs []Record
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return stats, fmt.Errorf("read csv line %d: %w", line, err)
		}
		stats.Read++

		rec, err := cols.record(row)
		if err == nil {
			_, _, err = BuildCard(im.parser, rec)
		}
		if err != nil {
			im.logger.Warn("skipping card row", zap.Int("line", line), zap.Error(err))
			stats.Skipped++
			continue
		}
		recs = append(recs, rec)
	}

	saved, err := im.store.Save(ctx, recs)
	stats.Saved = saved
	if err != nil {
		return stats, err
	}
	im.logger.Info("card import complete",
		zap.Int("read", stats.Read),
		zap.Int("skipped", stats.Skipped),
		zap.Int("saved", stats.Saved),
	)
	return stats, nil
}

type columns map[string]int

func mapColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := columns{}
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok {
				cols[field] = i
				break
			}
		}
	}
	for _, required := range []string{"name", "types"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header is missing a %s column", required)
		}
	}
	return cols, nil
}

func (c columns) get(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columns) record(row []string) (Record, error) {
	if c["name"] >= len(row) || c["types"] >= len(row) {
		return Record{}, fmt.Errorf("row has %d columns", len(row))
	}
	rec := Record{
		Name:       c.get(row, "name"),
		ManaCost:   c.get(row, "mana_cost"),
		OracleText: c.get(row, "oracle_text"),
	}
	for _, t := range strings.FieldsFunc(c.get(row, "types"), func(r rune) bool { return r == ',' || r == ' ' }) {
		rec.Types = append(rec.Types, strings.ToLower(t))
	}
	super := strings.ToLower(c.get(row, "supertypes"))
	rec.Legendary = strings.Contains(super, "legendary") || super == "true" || super == "1"

	var err error
	if rec.Power, err = stat(c.get(row, "power")); err != nil {
		return Record{}, fmt.Errorf("card %s power: %w", rec.Name, err)
	}
	if rec.Toughness, err = stat(c.get(row, "toughness")); err != nil {
		return Record{}, fmt.Errorf("card %s toughness: %w", rec.Name, err)
	}
	return rec, nil
}

func stat(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
