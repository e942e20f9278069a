// Command eorsky simulates drift-scan interferometer visibilities for a
// Gaussian random HEALPix sky shell and writes them to a binary result file.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/aelanman/eorsky/internal/health"
	"github.com/aelanman/eorsky/internal/metrics"
	"github.com/aelanman/eorsky/internal/pspec"
	"github.com/aelanman/eorsky/internal/sky"
	"github.com/aelanman/eorsky/internal/transform"
	"github.com/aelanman/eorsky/internal/visibility"
	"github.com/aelanman/eorsky/internal/visio"
)

// HERA site coordinates (Karoo, South Africa).
const (
	siteLatDeg = -30.7215277777
	siteLonDeg = 21.4283055554
)

// integrationSec is the correlator integration time per sample.
const integrationSec = 11.0

func main() {
	var (
		fwhm     = flag.Float64("fwhm", 50, "gaussian primary beam FWHM, degrees")
		fov      = flag.Float64("fov", 100, "field of view, degrees")
		skySigma = flag.Float64("sigma", 2.0, "sky brightness sigma, Kelvin")
		nside    = flag.Int("nside", 128, "sky resolution Nside")
		ntimes   = flag.Int("ntimes", 7854, "number of 11 s integration times (default is 24 hours' worth)")
		blLen    = flag.Float64("baseline", 14.6, "east-west baseline length, meters")
		nskies   = flag.Int("nskies", 1, "number of sky realizations")
		nfreqs   = flag.Int("nfreqs", 384, "number of frequency channels")
		f0       = flag.Float64("freq-start", 1.0e8, "first frequency channel, Hz")
		f1       = flag.Float64("freq-end", 1.3e8, "last frequency channel, Hz")
		beamType = flag.String("beam", "gaussian", "beam type: uniform or gaussian")
		workers  = flag.Int("workers", runtime.NumCPU(), "worker goroutines (SLURM_CPUS_PER_TASK overrides)")
		seed     = flag.Uint64("seed", 0xe0125c1, "sky realization seed")
		outPath  = flag.String("out", "eorsky_vis.dat", "output file path")
		mAddr    = flag.String("metrics-addr", "", "optional listen address for /metrics and /healthz")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if v := os.Getenv("SLURM_CPUS_PER_TASK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid SLURM_CPUS_PER_TASK value, keeping flag value", "value", v)
		} else {
			*workers = n
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *mAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/healthz", health.Healthz)
		go func() {
			logger.Info("metrics listener starting", "addr", *mAddr)
			if err := http.ListenAndServe(*mAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener error", "error", err)
			}
		}()
	}

	if *ntimes < 2 || *nfreqs < 2 {
		logger.Error("need at least two time samples and two frequency channels",
			"ntimes", *ntimes, "nfreqs", *nfreqs)
		os.Exit(1)
	}

	// Time samples: consecutive integrations starting at the J2000 epoch.
	timesJD := make([]float64, *ntimes)
	floats.Span(timesJD, transform.J2000, transform.J2000+float64(*ntimes-1)*integrationSec/86400.0)

	freqsHz := make([]float64, *nfreqs)
	floats.Span(freqsHz, *f0, *f1)

	logger.Info("generating sky shell",
		"nside", *nside, "nskies", *nskies, "nfreqs", *nfreqs, "sigma_k", *skySigma)
	shell, err := sky.NewGaussianShell(*nskies, *nside, freqsHz, *skySigma, *seed)
	if err != nil {
		logger.Error("sky generation failed", "error", err)
		os.Exit(1)
	}

	bl := visibility.NewBaseline([3]float64{0, 0, 0}, [3]float64{0, *blLen, 0})
	obs, err := visibility.NewObservatory(siteLatDeg, siteLonDeg, []visibility.Baseline{bl}, freqsHz, logger)
	if err != nil {
		logger.Error("invalid observatory", "error", err)
		os.Exit(1)
	}
	if err := obs.SetFOV(*fov); err != nil {
		logger.Error("invalid field of view", "error", err)
		os.Exit(1)
	}
	sigmaDeg := *fwhm / 2.355
	if *beamType == "uniform" {
		sigmaDeg = 0
	}
	if err := obs.SetBeamByName(*beamType, sigmaDeg); err != nil {
		logger.Error("invalid beam configuration", "error", err)
		os.Exit(1)
	}
	obs.SetPointings(timesJD)

	// Periodic progress reporting for long batch runs.
	progressCtx, stopProgress := context.WithCancel(ctx)
	defer stopProgress()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logger.Info("progress", "completed_times", visibility.Completed(), "total_times", *ntimes)
			case <-progressCtx.Done():
				return
			}
		}
	}()

	res, err := obs.MakeVisibilities(ctx, shell, *workers)
	stopProgress()
	if err != nil {
		logger.Error("visibility computation failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		logger.Error("creating output file", "error", err)
		os.Exit(1)
	}
	w := bufio.NewWriter(f)
	if err := visio.Write(w, res, freqsHz); err != nil {
		logger.Error("writing output file", "error", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		logger.Error("flushing output file", "error", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		logger.Error("closing output file", "error", err)
		os.Exit(1)
	}
	logger.Info("wrote visibilities", "path", *outPath, "rows", len(res.Vis))

	logDelaySummary(logger, res, freqsHz)
}

// logDelaySummary reports the delay bin holding the most power, summed over
// the first sky realization. A quick sanity diagnostic on the output.
func logDelaySummary(logger *slog.Logger, res *visibility.Result, freqsHz []float64) {
	spectra := make([][]complex128, len(res.Vis))
	for i, row := range res.Vis {
		spectra[i] = row[0]
	}
	power, delays, err := pspec.DelaySpectrum(spectra, freqsHz)
	if err != nil {
		logger.Warn("delay spectrum failed", "error", err)
		return
	}
	total := make([]float64, len(delays))
	for _, p := range power {
		floats.Add(total, p)
	}
	peak := floats.MaxIdx(total)
	logger.Info("delay spectrum summary",
		"peak_delay_us", delays[peak]*1e6,
		"peak_power_jy2", total[peak],
	)
}
