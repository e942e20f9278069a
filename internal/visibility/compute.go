package visibility

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/aelanman/eorsky/internal/healpix"
	"github.com/aelanman/eorsky/internal/metrics"
	"github.com/aelanman/eorsky/internal/projector"
	"github.com/aelanman/eorsky/internal/sky"
	"github.com/aelanman/eorsky/internal/units"
)

// Result is the output of one visibility computation: a dense (time x
// baseline) set of complex flux densities in Jy, sorted ascending by
// (baseline index, time index).
type Result struct {
	// Vis[row][sky][freq]; rows are ordered to match TimesJD/BaselineIdx.
	Vis [][][]complex128
	// TimesJD holds the originating Julian date of each row.
	TimesJD []float64
	// BaselineIdx holds the originating baseline index of each row.
	BaselineIdx []int
}

// visEntry is one worker product: the visibility vector for a single
// (time, baseline) pair.
type visEntry struct {
	timeIdx     int
	baselineIdx int
	vis         [][]complex128 // [sky][freq], in K sr
}

// completed counts fully reduced time samples across all workers of the
// running computation.
var completed atomic.Int64

// Completed reports the number of time samples finished so far in the
// current (or last) MakeVisibilities call. Progress observation only.
func Completed() int64 { return completed.Load() }

// MakeVisibilities computes visibilities for every (time, baseline,
// frequency) combination against the given sky shell, splitting the time
// axis across `workers` goroutines that share the shell read-only.
//
// The shell is in Kelvin; results are returned in Jy. The first worker error
// cancels the computation and is returned to the caller.
func (o *Observatory) MakeVisibilities(ctx context.Context, shell *sky.Shell, workers int) (*Result, error) {
	if o.fovDeg <= 0 {
		return nil, projector.ErrFOVUnset
	}
	if len(o.pointings) == 0 {
		return nil, fmt.Errorf("observatory: pointing centers not set")
	}
	if shell.Nfreqs != len(o.freqsHz) {
		return nil, fmt.Errorf("observatory: shell has %d frequency channels, observatory has %d", shell.Nfreqs, len(o.freqsHz))
	}
	nside, err := shell.Nside()
	if err != nil {
		return nil, err
	}

	ntimes := len(o.pointings)
	nbls := len(o.baselines)
	if workers < 1 {
		workers = 1
	}
	if workers > ntimes {
		workers = ntimes
	}

	start := time.Now()
	completed.Store(0)
	metrics.SetWorkersActive(workers)
	defer metrics.SetWorkersActive(0)
	o.logger.Info("starting visibility computation",
		"times", ntimes,
		"baselines", nbls,
		"frequencies", len(o.freqsHz),
		"skies", shell.Nskies,
		"nside", nside,
		"workers", workers,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan visEntry, workers*2)
	errs := make(chan error, workers)

	proj := projector.Projector{Nside: nside, FOVDeg: o.fovDeg}

	// Contiguous near-equal time chunks: the first ntimes%workers chunks
	// take one extra sample.
	base, rem := ntimes/workers, ntimes%workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + base
		if w < rem {
			hi++
		}
		go o.visWorker(ctx, proj, shell, lo, hi, results, errs)
		lo = hi
	}

	// Drain exactly the expected number of entries. Counting the drain
	// (rather than polling for queue emptiness) guarantees no result from
	// a slow worker is dropped.
	expected := ntimes * nbls
	entries := make([]visEntry, 0, expected)
	for len(entries) < expected {
		select {
		case e := <-results:
			entries = append(entries, e)
		case err := <-errs:
			cancel()
			o.logger.Error("visibility worker failed", "error", err)
			return nil, fmt.Errorf("visibility computation aborted: %w", err)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// Canonical ordering: ascending by (baseline index, time index).
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].baselineIdx != entries[j].baselineIdx {
			return entries[i].baselineIdx < entries[j].baselineIdx
		}
		return entries[i].timeIdx < entries[j].timeIdx
	})

	// Temperature (K sr) to flux density (Jy), per frequency.
	pixArea := healpix.PixArea(nside)
	conv := make([]float64, len(o.freqsHz))
	for i, f := range o.freqsHz {
		conv[i] = units.Jy2TStr(f, pixArea)
	}

	res := &Result{
		Vis:         make([][][]complex128, len(entries)),
		TimesJD:     make([]float64, len(entries)),
		BaselineIdx: make([]int, len(entries)),
	}
	for i, e := range entries {
		for _, skyVis := range e.vis {
			for fi := range skyVis {
				skyVis[fi] /= complex(conv[fi], 0)
			}
		}
		res.Vis[i] = e.vis
		res.TimesJD[i] = o.timesJD[e.timeIdx]
		res.BaselineIdx[i] = e.baselineIdx
	}

	dur := time.Since(start)
	metrics.RecordComputation(dur)
	o.logger.Info("visibility computation complete",
		"rows", len(entries),
		"duration_ms", dur.Milliseconds(),
	)
	return res, nil
}

// visWorker reduces the time samples [lo, hi) and publishes one entry per
// (time, baseline). The shell is read-only here.
func (o *Observatory) visWorker(ctx context.Context, proj projector.Projector, shell *sky.Shell, lo, hi int, results chan<- visEntry, errs chan<- error) {
	for ti := lo; ti < hi; ti++ {
		if ctx.Err() != nil {
			return
		}
		pc := o.pointings[ti]
		az, za, pix, err := proj.Project(pc.RADeg, pc.DecDeg)
		if err != nil {
			sendErr(ctx, errs, fmt.Errorf("time %d: projecting pointing center: %w", ti, err))
			return
		}
		metrics.RecordPixelsSelected(len(pix))

		// One beam value per pixel, broadcast across frequency.
		bm, err := o.beam.Eval(az, za, 0)
		if err != nil {
			sendErr(ctx, errs, fmt.Errorf("time %d: evaluating beam: %w", ti, err))
			return
		}

		for bi, bl := range o.baselines {
			fringe := bl.Fringe(az, za, o.freqsHz)
			vis := o.reduce(shell, pix, bm, fringe)
			select {
			case results <- visEntry{timeIdx: ti, baselineIdx: bi, vis: vis}:
			case <-ctx.Done():
				return
			}
		}
		completed.Add(1)
		metrics.TimestepCompleted()
	}
	o.logger.Debug("worker chunk finished", "first_time", lo, "last_time", hi-1)
}

// reduce sums sky * beam * fringe over the selected pixels, producing one
// complex visibility per (sky realization, frequency). Pixels are iterated
// in ascending index order, so the reduction is deterministic for any
// worker count.
func (o *Observatory) reduce(shell *sky.Shell, pix []int, bm []float64, fringe [][]complex128) [][]complex128 {
	nf := shell.Nfreqs
	vis := make([][]complex128, shell.Nskies)
	for sk := range vis {
		vis[sk] = make([]complex128, nf)
	}
	for pi, px := range pix {
		w := bm[pi]
		if w == 0 {
			continue
		}
		fr := fringe[pi]
		for sk := 0; sk < shell.Nskies; sk++ {
			row := shell.Data[(sk*shell.Npix+px)*nf : (sk*shell.Npix+px)*nf+nf]
			acc := vis[sk]
			for fi := 0; fi < nf; fi++ {
				acc[fi] += complex(row[fi]*w, 0) * fr[fi]
			}
		}
	}
	return vis
}

func sendErr(ctx context.Context, errs chan<- error, err error) {
	select {
	case errs <- err:
	case <-ctx.Done():
	}
}
