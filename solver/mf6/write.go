package mf6

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maseology/pumptest/solver"
	"github.com/rotisserie/eris"
)

const (
	modelName = "pumptest"
	headFile  = modelName + ".hds"
)

// ims settings
const (
	outerDvclose = 1e-2
	innerDvclose = 1e-3
	outerMaximum = 50
	innerMaximum = 100
)

type writer struct {
	dir string
	err error
}

// file writes one input file using fn; the first error sticks.
func (w *writer) file(name string, fn func(b *bufio.Writer)) {
	if w.err != nil {
		return
	}
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		w.err = eris.Wrapf(err, "mf6: create %s", name)
		return
	}
	defer f.Close()
	b := bufio.NewWriter(f)
	fn(b)
	if err := b.Flush(); err != nil {
		w.err = eris.Wrapf(err, "mf6: write %s", name)
	}
}

// WriteInput writes a complete MODFLOW 6 simulation for in into dir.
func WriteInput(dir string, in *solver.Input) error {
	if err := in.Check(); err != nil {
		return eris.Wrap(err, "mf6: invalid input")
	}
	gd := in.Grid
	nl, nc := gd.Nlay(), gd.Ncol()
	w := writer{dir: dir}

	w.file("mfsim.nam", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN timing\n  TDIS6  %s.tdis\nEND timing\n\n", modelName)
		fmt.Fprintf(b, "BEGIN models\n  gwf6  %s.nam  %s\nEND models\n\n", modelName, modelName)
		fmt.Fprintf(b, "BEGIN exchanges\nEND exchanges\n\n")
		fmt.Fprintf(b, "BEGIN solutiongroup  1\n  ims6  %s.ims  %s\nEND solutiongroup  1\n", modelName, modelName)
	})

	w.file(modelName+".tdis", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  TIME_UNITS  seconds\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN dimensions\n  NPER  %d\nEND dimensions\n\n", len(in.Periods))
		fmt.Fprintf(b, "BEGIN perioddata\n")
		for _, p := range in.Periods {
			fmt.Fprintf(b, "  %s  %d  %s\n", num(p.Length), p.Steps, num(p.Multiplier))
		}
		fmt.Fprintf(b, "END perioddata\n")
	})

	w.file(modelName+".ims", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  PRINT_OPTION  summary\n  COMPLEXITY  moderate\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN nonlinear\n  OUTER_DVCLOSE  %s\n  OUTER_MAXIMUM  %d\nEND nonlinear\n\n", num(outerDvclose), outerMaximum)
		fmt.Fprintf(b, "BEGIN linear\n  INNER_MAXIMUM  %d\n  INNER_DVCLOSE  %s\n  INNER_RCLOSE  %s\n  LINEAR_ACCELERATION  bicgstab\nEND linear\n", innerMaximum, num(innerDvclose), num(innerDvclose))
	})

	w.file(modelName+".nam", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  SAVE_FLOWS\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN packages\n")
		for _, p := range []string{"dis", "npf", "ic", "sto", "chd", "wel", "oc"} {
			fmt.Fprintf(b, "  %s6  %s.%s  %s\n", p, modelName, p, p)
		}
		fmt.Fprintf(b, "END packages\n")
	})

	w.file(modelName+".dis", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  LENGTH_UNITS  meters\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN dimensions\n  NLAY  %d\n  NROW  1\n  NCOL  %d\nEND dimensions\n\n", nl, nc)
		fmt.Fprintf(b, "BEGIN griddata\n  delr\n")
		internal(b, gd.Width)
		fmt.Fprintf(b, "  delc\n    CONSTANT  1.0\n")
		fmt.Fprintf(b, "  top\n    CONSTANT  %s\n", num(gd.Top[0]))
		fmt.Fprintf(b, "  botm  LAYERED\n")
		for _, z := range gd.Bottom {
			fmt.Fprintf(b, "    CONSTANT  %s\n", num(z))
		}
		fmt.Fprintf(b, "END griddata\n")
	})

	w.file(modelName+".npf", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  SAVE_FLOWS\n  ALTERNATIVE_CELL_AVERAGING  LOGARITHMIC\n  VARIABLECV  DEWATERED\n  K33OVERK\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN griddata\n  icelltype\n    CONSTANT  1\n  k  LAYERED\n")
		for l := 0; l < nl; l++ {
			internal(b, in.Props.K[l])
		}
		fmt.Fprintf(b, "  k33\n    CONSTANT  %s\nEND griddata\n", num(in.Anisotropy))
	})

	w.file(modelName+".ic", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN griddata\n  strt\n    CONSTANT  %s\nEND griddata\n", num(in.StartingHead))
	})

	w.file(modelName+".sto", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN griddata\n  iconvert\n    CONSTANT  1\n  ss  LAYERED\n")
		for l := 0; l < nl; l++ {
			internal(b, in.Props.Ss[l])
		}
		fmt.Fprintf(b, "  sy  LAYERED\n")
		for l := 0; l < nl; l++ {
			internal(b, in.Props.Sy[l])
		}
		fmt.Fprintf(b, "END griddata\n\nBEGIN period  1\n  TRANSIENT\nEND period  1\n")
	})

	// specified head on every layer of the outer column, held for all periods
	w.file(modelName+".chd", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN dimensions\n  MAXBOUND  %d\nEND dimensions\n\n", nl)
		fmt.Fprintf(b, "BEGIN period  1\n")
		for l := 0; l < nl; l++ {
			fmt.Fprintf(b, "  %d  1  %d  %s\n", l+1, nc, num(in.BoundaryHead))
		}
		fmt.Fprintf(b, "END period  1\n")
	})

	w.file(modelName+".wel", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  PRINT_INPUT\n  PRINT_FLOWS\nEND options\n\n")
		fmt.Fprintf(b, "BEGIN dimensions\n  MAXBOUND  %d\nEND dimensions\n\n", max(len(in.Well), 1))
		for i, p := range in.Periods {
			fmt.Fprintf(b, "BEGIN period  %d\n", i+1)
			if p.Rate != 0. {
				for _, wl := range in.Well {
					fmt.Fprintf(b, "  %d  1  1  %s\n", wl.Layer+1, num(p.Rate*wl.Fraction))
				}
			}
			fmt.Fprintf(b, "END period  %d\n\n", i+1)
		}
	})

	w.file(modelName+".oc", func(b *bufio.Writer) {
		fmt.Fprintf(b, "BEGIN options\n  HEAD  FILEOUT  %s\nEND options\n\n", headFile)
		fmt.Fprintf(b, "BEGIN period  1\n  SAVE  HEAD  ALL\nEND period  1\n")
	})

	return w.err
}

func num(v float64) string { return fmt.Sprintf("%.10g", v) }

func internal(b *bufio.Writer, v []float64) {
	fmt.Fprintf(b, "    INTERNAL  FACTOR  1.0\n")
	for i, x := range v {
		if i%10 == 0 {
			fmt.Fprint(b, "     ")
		}
		fmt.Fprintf(b, " %s", num(x))
		if i%10 == 9 || i == len(v)-1 {
			fmt.Fprintln(b)
		}
	}
}
