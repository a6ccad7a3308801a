package mf6

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strings"

	"github.com/maseology/pumptest/solver"
	"github.com/rotisserie/eris"
)

// inactive and dry cells are flagged with values of this magnitude
const noData = 1e29

// record header of a double-precision structured head file
type header struct {
	Kstp, Kper    int32
	Pertim, Totim float64
	Text          [16]byte
	Ncol, Nrow    int32
	Ilay          int32
}

// ReadHeads decodes a MODFLOW 6 binary head file of a one-row grid with nl
// layers. Undefined heads are returned as NaN.
func ReadHeads(fp string, nl int) (*solver.HeadSeries, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, eris.Wrapf(err, "mf6: open %s", fp)
	}
	defer f.Close()
	return decodeHeads(bufio.NewReader(f), nl)
}

func decodeHeads(r io.Reader, nl int) (*solver.HeadSeries, error) {
	hs := solver.HeadSeries{}
	var cur [][]float64
	for {
		var h header
		if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
			if err == io.EOF {
				break
			}
			return nil, eris.Wrap(err, "mf6: head record header")
		}
		if txt := strings.TrimSpace(string(h.Text[:])); txt != "HEAD" {
			return nil, eris.Errorf("mf6: unexpected record %q", txt)
		}
		if h.Nrow != 1 || h.Ilay < 1 || int(h.Ilay) > nl {
			return nil, eris.Errorf("mf6: record layer %d (%d rows) outside a %d-layer single-row grid", h.Ilay, h.Nrow, nl)
		}
		v := make([]float64, h.Ncol)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, eris.Wrapf(err, "mf6: head values of layer %d step %d", h.Ilay, h.Kstp)
		}
		for i, x := range v {
			if math.Abs(x) >= noData {
				v[i] = math.NaN()
			}
		}
		if h.Ilay == 1 {
			cur = make([][]float64, nl)
			hs.Times = append(hs.Times, h.Totim)
			hs.Period = append(hs.Period, int(h.Kper)-1)
			hs.Heads = append(hs.Heads, cur)
		}
		if cur == nil {
			return nil, eris.New("mf6: head file does not start with layer 1")
		}
		cur[h.Ilay-1] = v
	}
	for k, st := range hs.Heads {
		for l := range st {
			if st[l] == nil {
				return nil, eris.Errorf("mf6: step %d is missing layer %d", k+1, l+1)
			}
		}
	}
	return &hs, nil
}

// WriteHeads writes hs in the binary layout ReadHeads decodes, NaN heads as
// dry cells.
func WriteHeads(fp string, hs *solver.HeadSeries) error {
	buf := new(bytes.Buffer)
	for k, st := range hs.Heads {
		kper := int32(1)
		if k < len(hs.Period) {
			kper = int32(hs.Period[k] + 1)
		}
		for l, row := range st {
			h := header{Kstp: int32(k + 1), Kper: kper, Pertim: hs.Times[k], Totim: hs.Times[k], Ncol: int32(len(row)), Nrow: 1, Ilay: int32(l + 1)}
			copy(h.Text[:], "            HEAD")
			v := make([]float64, len(row))
			for i, x := range row {
				v[i] = x
				if math.IsNaN(x) {
					v[i] = -1e30
				}
			}
			if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
				return eris.Wrap(err, "mf6: encode head header")
			}
			if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
				return eris.Wrap(err, "mf6: encode heads")
			}
		}
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "mf6: write %s", fp)
	}
	return nil
}
