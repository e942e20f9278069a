package visibility

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/aelanman/eorsky/internal/beam"
	"github.com/aelanman/eorsky/internal/healpix"
	"github.com/aelanman/eorsky/internal/projector"
	"github.com/aelanman/eorsky/internal/transform"
)

// Pointing is a phase/pointing center in equatorial coordinates, degrees.
type Pointing struct {
	RADeg  float64
	DecDeg float64
}

// Observatory ties a geographic location, an array of baselines, a
// frequency list, and a primary beam into a full visibility computation.
// The shell latitude/longitude axes are assumed to be RA/Dec.
type Observatory struct {
	latDeg, lonDeg float64
	baselines      []Baseline
	freqsHz        []float64
	beam           beam.Model
	fovDeg         float64

	timesJD   []float64
	pointings []Pointing

	logger *slog.Logger
}

// NewObservatory validates and assembles an observatory. Frequencies must be
// positive and at least one baseline is required. The beam defaults to
// uniform; the field of view starts unset and must be configured before any
// computation.
func NewObservatory(latDeg, lonDeg float64, baselines []Baseline, freqsHz []float64, logger *slog.Logger) (*Observatory, error) {
	if len(baselines) == 0 {
		return nil, fmt.Errorf("observatory: at least one baseline required")
	}
	if len(freqsHz) == 0 {
		return nil, fmt.Errorf("observatory: at least one frequency required")
	}
	for i, f := range freqsHz {
		if f <= 0 || math.IsNaN(f) {
			return nil, fmt.Errorf("observatory: invalid frequency %v at channel %d", f, i)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Observatory{
		latDeg:    latDeg,
		lonDeg:    lonDeg,
		baselines: baselines,
		freqsHz:   freqsHz,
		beam:      beam.Uniform{},
		logger:    logger,
	}, nil
}

// Freqs returns the observatory frequency channels in Hz.
func (o *Observatory) Freqs() []float64 { return o.freqsHz }

// Baselines returns the baseline array.
func (o *Observatory) Baselines() []Baseline { return o.baselines }

// SetFOV sets the full field-of-view width in degrees.
func (o *Observatory) SetFOV(fovDeg float64) error {
	if fovDeg <= 0 {
		return fmt.Errorf("observatory: field of view must be positive, got %v", fovDeg)
	}
	o.fovDeg = fovDeg
	return nil
}

// SetBeam installs a primary beam model.
func (o *Observatory) SetBeam(m beam.Model) {
	o.beam = m
}

// SetBeamByName installs an analytic beam by type name ("uniform" or
// "gaussian" with sigma in degrees). Unknown names fail immediately.
func (o *Observatory) SetBeamByName(beamType string, sigmaDeg float64) error {
	m, err := beam.New(beamType, sigmaDeg)
	if err != nil {
		return err
	}
	o.beam = m
	return nil
}

// SetPointings computes one pointing center per time sample (Julian dates,
// UTC): the RA/Dec at local zenith for the observatory location, in input
// order. Pointings are held until the time array changes.
func (o *Observatory) SetPointings(timesJD []float64) {
	o.timesJD = append([]float64(nil), timesJD...)
	o.pointings = make([]Pointing, len(timesJD))
	for i, jd := range timesJD {
		ra, dec := transform.ZenithRADec(jd, o.latDeg, o.lonDeg)
		o.pointings[i] = Pointing{RADeg: ra, DecDeg: dec}
	}
	o.logger.Debug("pointing centers set", "count", len(o.pointings))
}

// Pointings returns the stored pointing-center sequence.
func (o *Observatory) Pointings() []Pointing { return o.pointings }

// ObservedRegions returns, for each pointing, the HEALPix pixels inside the
// observed cap at the given resolution. Diagnostic helper.
func (o *Observatory) ObservedRegions(nside int) ([][]int, error) {
	if o.fovDeg <= 0 {
		return nil, projector.ErrFOVUnset
	}
	if len(o.pointings) == 0 {
		return nil, fmt.Errorf("observatory: pointing centers not set")
	}
	radius := o.fovDeg * math.Pi / 180 / 2
	regions := make([][]int, len(o.pointings))
	for i, pc := range o.pointings {
		cvec := healpix.AngToVec(pc.RADeg, pc.DecDeg)
		regions[i] = healpix.QueryDisc(nside, cvec, radius)
	}
	return regions, nil
}
