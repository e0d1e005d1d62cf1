package profile

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// naTokens are cell values that mean "no observation" in the saline-wedge column
var naTokens = map[string]bool{
	"":     true,
	"na":   true,
	"nan":  true,
	"n/a":  true,
	"#n/a": true,
	"null": true,
	"none": true,
	"-":    true,
}

// Load reads and parses the survey file at path
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading profile %s: %w", path, err)
	}
	return Parse(filepath.Base(path), data)
}

// Read parses a survey read from r. name labels the source in errors.
func Read(name string, r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: name, Err: err}
	}
	return Parse(name, data)
}

// Source is a survey file held in memory
type Source struct {
	Name string
	Data []byte
}

// LoadAll reads the survey files at paths and parses them with ParseAll
func LoadAll(paths ...string) ([]*Profile, error) {
	sources := make([]Source, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading profile %s: %w", path, err)
		}
		sources[i] = Source{Name: filepath.Base(path), Data: data}
	}
	return ParseAll(sources...)
}

// ParseAll parses surveys that are only meaningful together. The headers of every
// source are checked before any row is converted, so a missing column in one file is
// reported ahead of a malformed value in another.
func ParseAll(sources ...Source) ([]*Profile, error) {
	for _, src := range sources {
		if _, _, _, err := readHeader(src.Name, src.Data); err != nil {
			return nil, err
		}
	}

	profiles := make([]*Profile, len(sources))
	for i, src := range sources {
		p, err := Parse(src.Name, src.Data)
		if err != nil {
			return nil, err
		}
		profiles[i] = p
	}
	return profiles, nil
}

// readHeader decodes data and consumes its header row, returning the reader positioned
// at the first data row and the index of each column
func readHeader(name string, data []byte) (*csv.Reader, []string, map[string]int, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, nil, nil, &ParseError{Source: name, Err: err}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil, &SchemaError{Source: name, Missing: append([]string(nil), RequiredColumns...)}
	}
	if err != nil {
		return nil, nil, nil, csvError(name, err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := col[h]; !dup {
			col[h] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := col[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, nil, nil, &SchemaError{Source: name, Missing: missing}
	}

	return r, header, col, nil
}

// Parse turns raw survey CSV content into a Profile. The header is checked for every
// required column before any value is converted; a missing column yields *SchemaError
// and any malformed content yields *ParseError.
func Parse(name string, data []byte) (*Profile, error) {
	r, header, col, err := readHeader(name, data)
	if err != nil {
		return nil, err
	}

	p := &Profile{Name: name}
	wellRow := 0

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}

		line, _ := r.FieldPos(0)
		if len(rec) > len(header) {
			return nil, &ParseError{Source: name, Row: line, Err: ErrExtraFields}
		}

		get := func(column string) string {
			i := col[column]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		fail := func(column string, err error) error {
			return &ParseError{Source: name, Row: line, Column: column, Value: get(column), Err: err}
		}

		station, err := parseNumber(get(ColumnStation))
		if err != nil {
			return nil, fail(ColumnStation, err)
		}
		if n := len(p.Stations); n > 0 && station <= p.Stations[n-1] {
			return nil, fail(ColumnStation, ErrStationOrder)
		}

		fresh, err := parseNumber(get(ColumnFreshwater))
		if err != nil {
			return nil, fail(ColumnFreshwater, err)
		}

		surface, err := parseNumber(get(ColumnPorousSurface))
		if err != nil {
			return nil, fail(ColumnPorousSurface, err)
		}

		wedge, err := parseOptionalNumber(get(ColumnSalineWedge))
		if err != nil {
			return nil, fail(ColumnSalineWedge, err)
		}

		well, err := parseFlag(get(ColumnExtractionWell))
		if err != nil {
			return nil, fail(ColumnExtractionWell, err)
		}
		if well {
			if wellRow > 0 {
				return nil, fail(ColumnExtractionWell, fmt.Errorf("%w: rows %d and %d", ErrMultipleWells, wellRow, line))
			}
			wellRow = line
		}

		p.Stations = append(p.Stations, station)
		p.Freshwater = append(p.Freshwater, fresh)
		p.PorousSurface = append(p.PorousSurface, surface)
		p.SalineWedge = append(p.SalineWedge, wedge)
		p.ExtractionWell = append(p.ExtractionWell, well)
	}

	if p.Len() == 0 {
		return nil, &ParseError{Source: name, Err: ErrNoRows}
	}

	return p, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Source: name, Row: pe.Line, Err: pe.Err}
	}
	return &ParseError{Source: name, Err: err}
}

// parseNumber parses a required, finite elevation or station value
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

func parseOptionalNumber(s string) (sql.NullFloat64, error) {
	if naTokens[strings.ToLower(s)] {
		return sql.NullFloat64{}, nil
	}
	v, err := parseNumber(s)
	if err != nil {
		return sql.NullFloat64{}, err
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}

// parseFlag reads the extraction-well column. Spreadsheets export it as a boolean,
// a 0/1 integer or a Spanish yes/no; an empty cell means no well at that station.
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "0", "0.0", "f", "false", "n", "no", "falso":
		return false, nil
	case "1", "1.0", "t", "true", "y", "yes", "s", "si", "sí", "verdadero", "x":
		return true, nil
	}
	return false, ErrInvalidFlag
}
