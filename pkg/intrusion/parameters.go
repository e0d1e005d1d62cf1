package intrusion

import (
	"errors"
	"fmt"
	"math"

	"github.com/chrissnell/saltwedge/internal/constants"
)

// ErrInvalidParameters is wrapped by every Parameters.Validate failure
var ErrInvalidParameters = errors.New("invalid analysis parameters")

// Parameters are the physical constants shared by both conditions of a comparison
type Parameters struct {
	// AquiferWidth is the width of the porous medium normal to the section, in meters
	AquiferWidth float64 `json:"aquifer_width"`

	// Porosity is the void fraction of the porous medium (0-1)
	Porosity float64 `json:"porosity"`

	// ExtractionCutoffElevation is the elevation of the well screen, in meters
	ExtractionCutoffElevation float64 `json:"extraction_cutoff_elevation"`
}

// DefaultParameters returns the parameters of the reference sand-tank experiment
func DefaultParameters() Parameters {
	return Parameters{
		AquiferWidth:              constants.DefaultAquiferWidth,
		Porosity:                  constants.DefaultPorosity,
		ExtractionCutoffElevation: constants.DefaultExtractionCutoffElevation,
	}
}

// Validate checks that the parameters are physically meaningful
func (p Parameters) Validate() error {
	switch {
	case math.IsNaN(p.AquiferWidth) || math.IsInf(p.AquiferWidth, 0) || p.AquiferWidth <= 0:
		return fmt.Errorf("%w: aquifer width must be a positive number of meters, got %g", ErrInvalidParameters, p.AquiferWidth)
	case math.IsNaN(p.Porosity) || p.Porosity < 0 || p.Porosity > 1:
		return fmt.Errorf("%w: porosity must be between 0 and 1, got %g", ErrInvalidParameters, p.Porosity)
	case math.IsNaN(p.ExtractionCutoffElevation) || math.IsInf(p.ExtractionCutoffElevation, 0):
		return fmt.Errorf("%w: extraction cutoff elevation must be finite, got %g", ErrInvalidParameters, p.ExtractionCutoffElevation)
	}
	return nil
}
