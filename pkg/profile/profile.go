// Package profile loads surveyed aquifer cross-section profiles from CSV and
// holds them as typed, index-aligned series.
package profile

import (
	"database/sql"
	"fmt"
)

// Column names of the survey CSV, exactly as the field sheets write them
const (
	ColumnStation        = "Abscisa (m)"
	ColumnFreshwater     = "cota de superficie de agua dulce (m)"
	ColumnPorousSurface  = "Superficie de medio poroso (m)"
	ColumnSalineWedge    = "cota de superficie de cuña salina (m)"
	ColumnExtractionWell = "ubicación del pozo de extracción"
)

// RequiredColumns lists every column a survey file must carry, in reporting order
var RequiredColumns = []string{
	ColumnStation,
	ColumnFreshwater,
	ColumnPorousSurface,
	ColumnSalineWedge,
	ColumnExtractionWell,
}

// Profile is one surveyed cross-section. All series are index-aligned to Stations.
type Profile struct {
	// Name identifies where the profile came from (usually the file name)
	Name string

	// Stations are horizontal positions along the section in meters, strictly increasing
	Stations []float64

	// Freshwater is the freshwater-surface elevation in meters
	Freshwater []float64

	// SalineWedge is the saline-wedge surface elevation in meters. Invalid entries mark
	// stations seaward of the wedge toe where no wedge was observed.
	SalineWedge []sql.NullFloat64

	// PorousSurface is the elevation of the porous-medium surface in meters
	PorousSurface []float64

	// ExtractionWell flags the station where the extraction well sits
	ExtractionWell []bool
}

// Len returns the number of stations in the profile
func (p *Profile) Len() int {
	return len(p.Stations)
}

// Validate checks the structural invariants of a profile: aligned, non-empty series,
// strictly increasing stations and at most one extraction well.
func (p *Profile) Validate() error {
	n := len(p.Stations)
	if n == 0 {
		return ErrNoRows
	}

	if len(p.Freshwater) != n || len(p.SalineWedge) != n || len(p.PorousSurface) != n || len(p.ExtractionWell) != n {
		return fmt.Errorf("%w: stations=%d freshwater=%d wedge=%d surface=%d well=%d",
			ErrMisaligned, n, len(p.Freshwater), len(p.SalineWedge), len(p.PorousSurface), len(p.ExtractionWell))
	}

	for i := 1; i < n; i++ {
		if p.Stations[i] <= p.Stations[i-1] {
			return fmt.Errorf("%w: station %g follows %g", ErrStationOrder, p.Stations[i], p.Stations[i-1])
		}
	}

	wells := 0
	for _, w := range p.ExtractionWell {
		if w {
			wells++
		}
	}
	if wells > 1 {
		return fmt.Errorf("%w: %d stations flagged", ErrMultipleWells, wells)
	}

	return nil
}

// Wedge returns the wedge sub-profile: the stations and elevations where a saline
// wedge value is present, in original station order.
func (p *Profile) Wedge() (stations, elevations []float64) {
	for i, w := range p.SalineWedge {
		if !w.Valid {
			continue
		}
		stations = append(stations, p.Stations[i])
		elevations = append(elevations, w.Float64)
	}
	return stations, elevations
}

// ExtractionIndex returns the index of the flagged extraction-well station.
// ok is false when no station is flagged.
func (p *Profile) ExtractionIndex() (idx int, ok bool) {
	for i, w := range p.ExtractionWell {
		if w {
			return i, true
		}
	}
	return -1, false
}
