// Package intrusion derives saline-intrusion metrics from surveyed aquifer profiles
// and compares a pumping condition against a non-pumping one.
package intrusion

import (
	"errors"
	"fmt"

	"github.com/chrissnell/saltwedge/pkg/profile"
	"gonum.org/v1/gonum/floats"
)

const (
	litersPerCubicMeter = 1000
	centimetersPerMeter = 100
)

// Point is a position in the (station, elevation) plane of the section, in meters
type Point struct {
	Station   float64 `json:"station"`
	Elevation float64 `json:"elevation"`
}

// Result holds every quantity derived from a single profile
type Result struct {
	// Areas under each curve, in square meters
	FreshwaterArea float64 `json:"freshwater_area_m2"`
	WedgeArea      float64 `json:"wedge_area_m2"`
	SurfaceArea    float64 `json:"surface_area_m2"`

	// Volumes in liters
	FreshwaterVolume  float64 `json:"freshwater_volume_l"`
	SaltwaterVolume   float64 `json:"saltwater_volume_l"`
	UnsaturatedVolume float64 `json:"unsaturated_volume_l"`
	TotalVolume       float64 `json:"total_volume_l"`

	IntrusionPercent float64 `json:"intrusion_percent"`

	MaxFreshwaterElevationCM float64 `json:"max_freshwater_elevation_cm"`
	WedgeToeLengthCM         float64 `json:"wedge_toe_length_cm"`
	WellToWedgeDistanceCM    float64 `json:"well_to_wedge_distance_cm"`

	// WedgeToe is the first observed wedge point; WellReference is the well station at
	// the extraction cutoff elevation
	WedgeToe      Point `json:"wedge_toe"`
	WellReference Point `json:"well_reference"`
}

// Analyze computes the intrusion metrics of one profile. It has no side effects and
// returns identical results for identical inputs.
func Analyze(p *profile.Profile, params Parameters) (*Result, error) {
	if p == nil {
		return nil, errors.New("nil profile")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	wedgeStations, wedgeElevations := p.Wedge()
	if len(wedgeStations) == 0 {
		return nil, &InsufficientDataError{Profile: p.Name}
	}

	r := &Result{
		FreshwaterArea: Trapezoid(p.Stations, p.Freshwater),
		WedgeArea:      Trapezoid(wedgeStations, wedgeElevations),
		SurfaceArea:    Trapezoid(p.Stations, p.PorousSurface),
	}

	// Each component comes straight from the raw areas; curves that cross can make
	// them disagree with a shared total and that is reported as measured.
	toLiters := func(area float64) float64 {
		return area * params.AquiferWidth * params.Porosity * litersPerCubicMeter
	}
	r.FreshwaterVolume = toLiters(r.FreshwaterArea - r.WedgeArea)
	r.SaltwaterVolume = toLiters(r.WedgeArea)
	r.UnsaturatedVolume = toLiters(r.SurfaceArea - r.FreshwaterArea)
	r.TotalVolume = r.FreshwaterVolume + r.SaltwaterVolume + r.UnsaturatedVolume

	if r.TotalVolume == 0 {
		return nil, fmt.Errorf("%s: %w", p.Name, ErrZeroTotalVolume)
	}
	r.IntrusionPercent = r.SaltwaterVolume / r.TotalVolume * 100

	r.MaxFreshwaterElevationCM = floats.Max(p.Freshwater) * centimetersPerMeter

	// First and last in station order, not the extreme values
	last := len(wedgeStations) - 1
	r.WedgeToeLengthCM = (wedgeStations[last] - wedgeStations[0]) * centimetersPerMeter
	r.WedgeToe = Point{Station: wedgeStations[0], Elevation: wedgeElevations[0]}

	well, ok := p.ExtractionIndex()
	if !ok {
		return nil, &NoExtractionPointError{Profile: p.Name}
	}
	r.WellReference = Point{Station: p.Stations[well], Elevation: params.ExtractionCutoffElevation}
	r.WellToWedgeDistanceCM = floats.Distance(
		[]float64{r.WedgeToe.Station, r.WedgeToe.Elevation},
		[]float64{r.WellReference.Station, r.WellReference.Elevation},
		2,
	) * centimetersPerMeter

	return r, nil
}
