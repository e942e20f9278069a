// Package visio serializes visibility results to a compact little-endian
// binary format for downstream analysis. One file holds the frequency table,
// the per-row time and baseline indices, and the interleaved complex data in
// (time x baseline) row order.
package visio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aelanman/eorsky/internal/visibility"
)

const (
	magic   = uint32(0x454f5256) // "EORV"
	version = uint32(1)
)

// Write serializes a result and its frequency table.
func Write(w io.Writer, res *visibility.Result, freqsHz []float64) error {
	nrows := len(res.Vis)
	if len(res.TimesJD) != nrows || len(res.BaselineIdx) != nrows {
		return fmt.Errorf("visio: inconsistent result: %d rows, %d times, %d baseline indices",
			nrows, len(res.TimesJD), len(res.BaselineIdx))
	}
	nskies, nfreqs := 0, len(freqsHz)
	if nrows > 0 {
		nskies = len(res.Vis[0])
	}

	hdr := []uint32{magic, version, uint32(nrows), uint32(nskies), uint32(nfreqs)}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("visio: writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, freqsHz); err != nil {
		return fmt.Errorf("visio: writing frequency table: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, res.TimesJD); err != nil {
		return fmt.Errorf("visio: writing time array: %w", err)
	}
	blIdx := make([]uint32, nrows)
	for i, b := range res.BaselineIdx {
		blIdx[i] = uint32(b)
	}
	if err := binary.Write(w, binary.LittleEndian, blIdx); err != nil {
		return fmt.Errorf("visio: writing baseline array: %w", err)
	}
	buf := make([]float64, 2*nfreqs)
	for r, row := range res.Vis {
		if len(row) != nskies {
			return fmt.Errorf("visio: row %d has %d sky planes, want %d", r, len(row), nskies)
		}
		for _, skyVis := range row {
			if len(skyVis) != nfreqs {
				return fmt.Errorf("visio: row %d has %d channels, want %d", r, len(skyVis), nfreqs)
			}
			for i, c := range skyVis {
				buf[2*i] = real(c)
				buf[2*i+1] = imag(c)
			}
			if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
				return fmt.Errorf("visio: writing visibilities: %w", err)
			}
		}
	}
	return nil
}

// Read deserializes a result written by Write.
func Read(r io.Reader) (*visibility.Result, []float64, error) {
	hdr := make([]uint32, 5)
	if err := binary.Read(r, binary.LittleEndian, hdr); err != nil {
		return nil, nil, fmt.Errorf("visio: reading header: %w", err)
	}
	if hdr[0] != magic {
		return nil, nil, fmt.Errorf("visio: bad magic 0x%08x", hdr[0])
	}
	if hdr[1] != version {
		return nil, nil, fmt.Errorf("visio: unsupported version %d", hdr[1])
	}
	nrows, nskies, nfreqs := int(hdr[2]), int(hdr[3]), int(hdr[4])

	freqs := make([]float64, nfreqs)
	if err := binary.Read(r, binary.LittleEndian, freqs); err != nil {
		return nil, nil, fmt.Errorf("visio: reading frequency table: %w", err)
	}
	res := &visibility.Result{
		Vis:         make([][][]complex128, nrows),
		TimesJD:     make([]float64, nrows),
		BaselineIdx: make([]int, nrows),
	}
	if err := binary.Read(r, binary.LittleEndian, res.TimesJD); err != nil {
		return nil, nil, fmt.Errorf("visio: reading time array: %w", err)
	}
	blIdx := make([]uint32, nrows)
	if err := binary.Read(r, binary.LittleEndian, blIdx); err != nil {
		return nil, nil, fmt.Errorf("visio: reading baseline array: %w", err)
	}
	for i, b := range blIdx {
		res.BaselineIdx[i] = int(b)
	}
	buf := make([]float64, 2*nfreqs)
	for ri := 0; ri < nrows; ri++ {
		row := make([][]complex128, nskies)
		for sk := 0; sk < nskies; sk++ {
			if err := binary.Read(r, binary.LittleEndian, buf); err != nil {
				return nil, nil, fmt.Errorf("visio: reading visibilities: %w", err)
			}
			skyVis := make([]complex128, nfreqs)
			for i := range skyVis {
				skyVis[i] = complex(buf[2*i], buf[2*i+1])
			}
			row[sk] = skyVis
		}
		res.Vis[ri] = row
	}
	return res, freqs, nil
}
