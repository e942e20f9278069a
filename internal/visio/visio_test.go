package visio

import (
	"bytes"
	"testing"

	"github.com/aelanman/eorsky/internal/visibility"
)

func testResult() *visibility.Result {
	return &visibility.Result{
		Vis: [][][]complex128{
			{{complex(1, 2), complex(3, -4)}},
			{{complex(-5, 0.5), complex(0, 0)}},
			{{complex(7, 7), complex(-1, 1)}},
		},
		TimesJD:     []float64{2451545.0, 2451545.000127, 2451545.0},
		BaselineIdx: []int{0, 0, 1},
	}
}

func TestRoundTrip(t *testing.T) {
	res := testResult()
	freqs := []float64{1.0e8, 1.3e8}

	var buf bytes.Buffer
	if err := Write(&buf, res, freqs); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, gotFreqs, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(gotFreqs) != len(freqs) || gotFreqs[0] != freqs[0] || gotFreqs[1] != freqs[1] {
		t.Errorf("frequencies = %v, want %v", gotFreqs, freqs)
	}
	if len(got.Vis) != len(res.Vis) {
		t.Fatalf("rows = %d, want %d", len(got.Vis), len(res.Vis))
	}
	for r := range res.Vis {
		if got.TimesJD[r] != res.TimesJD[r] {
			t.Errorf("row %d: time %v, want %v", r, got.TimesJD[r], res.TimesJD[r])
		}
		if got.BaselineIdx[r] != res.BaselineIdx[r] {
			t.Errorf("row %d: baseline %d, want %d", r, got.BaselineIdx[r], res.BaselineIdx[r])
		}
		for sk := range res.Vis[r] {
			for fi := range res.Vis[r][sk] {
				if got.Vis[r][sk][fi] != res.Vis[r][sk][fi] {
					t.Errorf("vis[%d][%d][%d] = %v, want %v", r, sk, fi, got.Vis[r][sk][fi], res.Vis[r][sk][fi])
				}
			}
		}
	}
}

func TestWriteInconsistentResult(t *testing.T) {
	res := testResult()
	res.TimesJD = res.TimesJD[:2]
	var buf bytes.Buffer
	if err := Write(&buf, res, []float64{1e8, 1.3e8}); err == nil {
		t.Error("Write with inconsistent row counts succeeded, want error")
	}
}

func TestReadBadMagic(t *testing.T) {
	if _, _, err := Read(bytes.NewReader(make([]byte, 64))); err == nil {
		t.Error("Read of zeroed bytes succeeded, want bad-magic error")
	}
}
