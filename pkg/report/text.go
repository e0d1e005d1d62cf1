package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/chrissnell/saltwedge/pkg/intrusion"
)

// WriteText renders the document as a plain-text report for terminals
func (d *Document) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	p := d.Comparison.Parameters
	fmt.Fprintf(tw, "Saline intrusion comparison %s\n", d.ID)
	fmt.Fprintf(tw, "  With pumping:\t%s\n", d.Sources.WithPumping)
	fmt.Fprintf(tw, "  Without pumping:\t%s\n", d.Sources.WithoutPumping)
	fmt.Fprintf(tw, "  Aquifer width:\t%g m\n", p.AquiferWidth)
	fmt.Fprintf(tw, "  Porosity:\t%g\n", p.Porosity)
	fmt.Fprintf(tw, "  Extraction cutoff:\t%g m\n", p.ExtractionCutoffElevation)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Comparative results")
	for _, m := range d.Metrics {
		fmt.Fprintf(tw, "  %s:\t%s\t(%s)\n", m.Label, m.Value, m.Direction)
	}

	for _, t := range d.Tables {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "%s\n", t.Condition)
		fmt.Fprintf(tw, "  Saline intrusion:\t%s\n", t.IntrusionPercent)
		for _, r := range t.Rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r.Parameter, r.Value)
		}
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Conclusions")
	for _, c := range d.Conclusions {
		fmt.Fprintf(tw, "  %s %s\n", bullet(d.Comparison.Intrusion.Direction), c)
	}

	return tw.Flush()
}

func bullet(dir intrusion.Direction) string {
	if dir == intrusion.Increases {
		return "!"
	}
	return "-"
}
