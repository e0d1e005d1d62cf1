package report

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/profile"
	"github.com/google/uuid"
)

func testProfile(name string, wedge []sql.NullFloat64) *profile.Profile {
	return &profile.Profile{
		Name:           name,
		Stations:       []float64{0, 1, 2},
		Freshwater:     []float64{1, 1, 1},
		PorousSurface:  []float64{2, 2, 2},
		SalineWedge:    wedge,
		ExtractionWell: []bool{true, false, false},
	}
}

func testComparison(t *testing.T) (*profile.Profile, *profile.Profile, *intrusion.Comparison) {
	t.Helper()

	present := sql.NullFloat64{Float64: 0.5, Valid: true}
	pumped := testProfile("con_bombeo.csv", []sql.NullFloat64{{}, present, present})
	natural := testProfile("sin_bombeo.csv", []sql.NullFloat64{{}, {}, present})

	c, err := intrusion.CompareConditions(pumped, natural, intrusion.Parameters{AquiferWidth: 1, Porosity: 1, ExtractionCutoffElevation: 0.5})
	if err != nil {
		t.Fatalf("CompareConditions() error = %v", err)
	}
	return pumped, natural, c
}

func TestBuild(t *testing.T) {
	pumped, natural, c := testComparison(t)

	d := Build(pumped, natural, c)

	if _, err := uuid.Parse(d.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", d.ID, err)
	}
	if d.Sources.WithPumping != "con_bombeo.csv" || d.Sources.WithoutPumping != "sin_bombeo.csv" {
		t.Errorf("Sources = %+v", d.Sources)
	}

	if len(d.Metrics) != 3 {
		t.Fatalf("expected 3 metrics, got %d", len(d.Metrics))
	}
	if d.Metrics[0].Value != "12.50%" || d.Metrics[0].Direction != intrusion.Increases {
		t.Errorf("intrusion metric = %+v", d.Metrics[0])
	}
	if d.Metrics[1].Value != "500.00 L" || d.Metrics[1].Direction != intrusion.Decreases {
		t.Errorf("freshwater metric = %+v", d.Metrics[1])
	}
	if d.Metrics[2].Value != "100.00 cm" || d.Metrics[2].Direction != intrusion.Decreases {
		t.Errorf("distance metric = %+v", d.Metrics[2])
	}

	if len(d.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(d.Tables))
	}
	rows := d.Tables[1].Rows
	if rows[0].Value != "2,000.00 L" || rows[2].Value != "2,000.00 L" || rows[5].Value != "200.00 cm" {
		t.Errorf("unexpected rows for the non-pumping condition: %+v", rows)
	}
	if d.Tables[1].IntrusionPercent != "0.00%" {
		t.Errorf("IntrusionPercent = %q, expected 0.00%%", d.Tables[1].IntrusionPercent)
	}
}

func TestConclusions(t *testing.T) {
	_, _, c := testComparison(t)

	got := Conclusions(c)
	expected := []string{
		"Saline intrusion increases with pumping by 12.50%.",
		"The distance between the well and the wedge toe decreases from 200.00 cm without pumping to 100.00 cm with pumping.",
		"Total freshwater volume: 1,500.00 L with pumping, 2,000.00 L without pumping.",
	}
	if len(got) != len(expected) {
		t.Fatalf("got %d conclusions, expected %d: %q", len(got), len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("conclusion %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestNewChart(t *testing.T) {
	pumped, natural, c := testComparison(t)

	chart := NewChart(pumped, natural, c.Parameters)

	// three curves per condition plus the well
	if len(chart.Series) != 7 {
		t.Fatalf("expected 7 series, got %d", len(chart.Series))
	}

	wedge := chart.Series[2]
	if wedge.Color != "red" || wedge.Dashed {
		t.Errorf("pumping wedge series = %+v", wedge)
	}
	if wedge.Y[0] != nil || wedge.Y[1] == nil || *wedge.Y[1] != 0.5 {
		t.Errorf("wedge series should be nil where absent: %v", wedge.Y)
	}
	if !chart.Series[3].Dashed {
		t.Error("non-pumping series should be dashed")
	}

	well := chart.Series[6]
	if well.X[0] != 0 || well.X[1] != 0 {
		t.Errorf("well should be vertical at station 0, got %v", well.X)
	}
	if *well.Y[0] != 2 || *well.Y[1] != 0.5 {
		t.Errorf("well should run from the surface to the cutoff, got %v, %v", *well.Y[0], *well.Y[1])
	}
	if chart.XMax != 0.8 || chart.YMax != 0.5 {
		t.Errorf("unexpected bounds %+v", chart)
	}
}

func TestWriteText(t *testing.T) {
	pumped, natural, c := testComparison(t)
	d := Build(pumped, natural, c)

	var buf bytes.Buffer
	if err := d.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		d.ID,
		"con_bombeo.csv",
		"condition 1 (with pumping)",
		"condition 2 (without pumping)",
		"Saline intrusion increases with pumping by 12.50%.",
		"1,500.00 L",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}
}
