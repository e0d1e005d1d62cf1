package report

import (
	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/profile"
)

// Bounds of the sand-tank section plot, in meters
const (
	chartXMin = 0.0
	chartXMax = 0.8
	chartYMin = 0.0
	chartYMax = 0.5
)

// Series is one polyline of the section plot. Y holds nil where the curve has no
// observation so renderers can break the line.
type Series struct {
	Name      string     `json:"name"`
	Condition string     `json:"condition"`
	Color     string     `json:"color"`
	Dashed    bool       `json:"dashed"`
	Marker    string     `json:"marker,omitempty"`
	X         []float64  `json:"x"`
	Y         []*float64 `json:"y"`
}

// Chart carries everything a client needs to draw the hydraulic profiles of both
// conditions on one set of axes
type Chart struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	XMin   float64  `json:"x_min"`
	XMax   float64  `json:"x_max"`
	YMin   float64  `json:"y_min"`
	YMax   float64  `json:"y_max"`
	Series []Series `json:"series"`
}

// NewChart builds the section plot. Pumping curves are solid and non-pumping curves
// dashed; the extraction well of the pumping condition is drawn from the porous
// surface down to the cutoff elevation.
func NewChart(withPumping, withoutPumping *profile.Profile, params intrusion.Parameters) Chart {
	c := Chart{
		Title:  "Hydraulic and saline intrusion profiles",
		XLabel: "Station (m)",
		YLabel: "Elevation (m)",
		XMin:   chartXMin,
		XMax:   chartXMax,
		YMin:   chartYMin,
		YMax:   chartYMax,
	}

	c.Series = append(c.Series, profileSeries(withPumping, intrusion.WithPumping, false)...)
	c.Series = append(c.Series, profileSeries(withoutPumping, intrusion.WithoutPumping, true)...)

	if well, ok := withPumping.ExtractionIndex(); ok {
		x := withPumping.Stations[well]
		c.Series = append(c.Series, Series{
			Name:      "Extraction well",
			Condition: intrusion.WithPumping.String(),
			Color:     "green",
			Marker:    "triangle",
			X:         []float64{x, x},
			Y:         []*float64{ptr(withPumping.PorousSurface[well]), ptr(params.ExtractionCutoffElevation)},
		})
	}

	return c
}

func profileSeries(p *profile.Profile, cond intrusion.Condition, dashed bool) []Series {
	suffix := " with pumping"
	if cond == intrusion.WithoutPumping {
		suffix = " without pumping"
	}

	surface := make([]*float64, p.Len())
	fresh := make([]*float64, p.Len())
	wedge := make([]*float64, p.Len())
	for i := range p.Stations {
		surface[i] = ptr(p.PorousSurface[i])
		fresh[i] = ptr(p.Freshwater[i])
		if p.SalineWedge[i].Valid {
			wedge[i] = ptr(p.SalineWedge[i].Float64)
		}
	}

	return []Series{
		{Name: "Surface" + suffix, Condition: cond.String(), Color: "black", Dashed: dashed, X: p.Stations, Y: surface},
		{Name: "Freshwater" + suffix, Condition: cond.String(), Color: "blue", Dashed: dashed, X: p.Stations, Y: fresh},
		{Name: "Saline wedge" + suffix, Condition: cond.String(), Color: "red", Dashed: dashed, X: p.Stations, Y: wedge},
	}
}

func ptr(v float64) *float64 {
	return &v
}
