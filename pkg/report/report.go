// Package report shapes a pumping/non-pumping comparison into what renderers show:
// headline metrics, per-condition tables, chart series and written conclusions.
package report

import (
	"fmt"
	"time"

	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/profile"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Document is the complete output of one comparison request
type Document struct {
	ID          string                `json:"id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Sources     Sources               `json:"sources"`
	Comparison  *intrusion.Comparison `json:"comparison"`
	Metrics     []Metric              `json:"metrics"`
	Tables      []Table               `json:"tables"`
	Chart       Chart                 `json:"chart"`
	Conclusions []string              `json:"conclusions"`
}

// Sources names the profiles that were compared
type Sources struct {
	WithPumping    string `json:"with_pumping"`
	WithoutPumping string `json:"without_pumping"`
}

// Metric is one headline figure of the comparison
type Metric struct {
	Label     string              `json:"label"`
	Value     string              `json:"value"`
	Direction intrusion.Direction `json:"direction"`
}

// Table lists the detailed results of one condition
type Table struct {
	Condition        string `json:"condition"`
	IntrusionPercent string `json:"intrusion_percent"`
	Rows             []Row  `json:"rows"`
}

// Row is a single parameter/value line of a Table
type Row struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// Build assembles the report for a finished comparison. Each document gets a fresh ID
// so that log lines and client renders can be matched up.
func Build(withPumping, withoutPumping *profile.Profile, c *intrusion.Comparison) *Document {
	return &Document{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Sources: Sources{
			WithPumping:    withPumping.Name,
			WithoutPumping: withoutPumping.Name,
		},
		Comparison: c,
		Metrics:    metrics(c),
		Tables: []Table{
			table(intrusion.WithPumping, c.WithPumping),
			table(intrusion.WithoutPumping, c.WithoutPumping),
		},
		Chart:       NewChart(withPumping, withoutPumping, c.Parameters),
		Conclusions: Conclusions(c),
	}
}

func metrics(c *intrusion.Comparison) []Metric {
	return []Metric{
		{
			Label:     "Saline intrusion difference",
			Value:     formatPercent(c.Intrusion.Magnitude),
			Direction: c.Intrusion.Direction,
		},
		{
			Label:     "Freshwater volume change",
			Value:     formatLiters(c.FreshwaterVolume.Magnitude),
			Direction: c.FreshwaterVolume.Direction,
		},
		{
			Label:     "Distance to wedge toe",
			Value:     formatCentimeters(c.WellToWedgeDistance.Magnitude),
			Direction: c.WellToWedgeDistance.Direction,
		},
	}
}

func table(cond intrusion.Condition, r *intrusion.Result) Table {
	return Table{
		Condition:        cond.String(),
		IntrusionPercent: formatPercent(r.IntrusionPercent),
		Rows: []Row{
			{"Freshwater", formatLiters(r.FreshwaterVolume)},
			{"Saltwater", formatLiters(r.SaltwaterVolume)},
			{"Unsaturated zone", formatLiters(r.UnsaturatedVolume)},
			{"Maximum water elevation", formatCentimeters(r.MaxFreshwaterElevationCM)},
			{"Wedge toe length", formatCentimeters(r.WedgeToeLengthCM)},
			{"Distance to well", formatCentimeters(r.WellToWedgeDistanceCM)},
		},
	}
}

// Conclusions phrases the comparison the way the lab write-ups do
func Conclusions(c *intrusion.Comparison) []string {
	var out []string

	switch c.Intrusion.Direction {
	case intrusion.Increases:
		out = append(out, fmt.Sprintf("Saline intrusion increases with pumping by %s.", formatPercent(c.Intrusion.Magnitude)))
	case intrusion.Decreases:
		out = append(out, fmt.Sprintf("Saline intrusion decreases with pumping by %s.", formatPercent(c.Intrusion.Magnitude)))
	default:
		out = append(out, "Saline intrusion is the same with and without pumping.")
	}

	d := c.WellToWedgeDistance
	switch d.Direction {
	case intrusion.Increases, intrusion.Decreases:
		verb := "decreases"
		if d.Direction == intrusion.Increases {
			verb = "increases"
		}
		out = append(out, fmt.Sprintf("The distance between the well and the wedge toe %s from %s without pumping to %s with pumping.",
			verb, formatCentimeters(d.WithoutPumping), formatCentimeters(d.WithPumping)))
	default:
		out = append(out, fmt.Sprintf("The distance between the well and the wedge toe stays at %s.", formatCentimeters(d.WithPumping)))
	}

	out = append(out, fmt.Sprintf("Total freshwater volume: %s with pumping, %s without pumping.",
		formatLiters(c.FreshwaterVolume.WithPumping), formatLiters(c.FreshwaterVolume.WithoutPumping)))

	return out
}

func formatLiters(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + " L"
}

func formatCentimeters(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + " cm"
}

func formatPercent(v float64) string {
	return humanize.FormatFloat("#,###.##", v) + "%"
}
