package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/saltwedge/internal/constants"
	"github.com/chrissnell/saltwedge/pkg/intrusion"
	"github.com/chrissnell/saltwedge/pkg/profile"
	"github.com/chrissnell/saltwedge/pkg/report"
)

func main() {
	var (
		withPumping    string
		withoutPumping string
		asJSON         bool
	)
	params := intrusion.DefaultParameters()

	flag.StringVar(&withPumping, "with", "", "CSV profile surveyed with pumping (condition 1)")
	flag.StringVar(&withoutPumping, "without", "", "CSV profile surveyed without pumping (condition 2)")
	flag.Float64Var(&params.AquiferWidth, "width", constants.DefaultAquiferWidth, "Aquifer width (m)")
	flag.Float64Var(&params.Porosity, "porosity", constants.DefaultPorosity, "Porosity of the medium (0-1)")
	flag.Float64Var(&params.ExtractionCutoffElevation, "cutoff", constants.DefaultExtractionCutoffElevation, "Elevation of the well extraction point (m)")
	flag.BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	flag.Parse()

	if withPumping == "" || withoutPumping == "" {
		fmt.Fprintln(os.Stderr, "Both -with and -without are required")
		flag.Usage()
		os.Exit(2)
	}

	profiles, err := profile.LoadAll(withPumping, withoutPumping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profiles: %v\n", err)
		os.Exit(1)
	}

	cmp, err := intrusion.CompareConditions(profiles[0], profiles[1], params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing profiles: %v\n", err)
		os.Exit(1)
	}

	doc := report.Build(profiles[0], profiles[1], cmp)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	} else {
		err = doc.WriteText(os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
}
