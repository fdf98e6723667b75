package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/nozzle/tiltedstable"
)

func createSampleCommand(stdout, stderr io.Writer) *cli.Command {
	flags := append(paramFlags(),
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "CSV output file, default stdout"},
	)
	return &cli.Command{
		Name:  "sample",
		Usage: "draw variates and write them as CSV",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, closer, err := newLogger(cmd, stderr)
			if err != nil {
				return err
			}
			defer closer.Close()
			p, err := resolveParams(cmd)
			if err != nil {
				return err
			}
			method, err := tiltedstable.ParseMethod(p.Method)
			if err != nil {
				return err
			}
			cfg, err := p.samplerConfig()
			if err != nil {
				return err
			}
			cfg.Logger = logger
			logger.Info("sampling", "alpha", p.Alpha, "tilt", p.Tilt, "n", p.N,
				"method", method, "source", cfg.Source, "seed", *cfg.Seed, "workers", p.Workers)

			xs, err := draw(cfg, p, method)
			if err != nil {
				return err
			}

			if p.Output == "" {
				return writeCSV(stdout, xs)
			}
			f, err := os.Create(p.Output)
			if err != nil {
				return err
			}
			if err := writeCSV(f, xs); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
}

func createCheckCommand(stdout, stderr io.Writer) *cli.Command {
	flags := append(paramFlags(),
		&cli.FloatFlag{Name: "significance", Usage: "Kolmogorov-Smirnov test level"},
	)
	return &cli.Command{
		Name:  "check",
		Usage: "compare both algorithms against each other and the theoretical moments",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, closer, err := newLogger(cmd, stderr)
			if err != nil {
				return err
			}
			defer closer.Close()
			p, err := resolveParams(cmd)
			if err != nil {
				return err
			}
			cfg, err := p.samplerConfig()
			if err != nil {
				return err
			}
			cfg.Logger = logger
			return runCheck(stdout, cfg, p)
		},
	}
}

func createMethodCommand(stdout, _ io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "method",
		Usage: "print the algorithm auto selects for alpha and tilt",
		Flags: paramFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := resolveParams(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, tiltedstable.ChooseMethod(p.Alpha, p.Tilt))
			return err
		},
	}
}

func draw(cfg tiltedstable.Config, p params, method tiltedstable.Method) ([]float64, error) {
	if p.Workers == 1 {
		s, err := tiltedstable.New(cfg)
		if err != nil {
			return nil, err
		}
		return s.SampleN(p.N, p.Alpha, p.Tilt, method)
	}
	return tiltedstable.SampleParallel(cfg, p.N, p.Workers, p.Alpha, p.Tilt, method)
}

// runCheck draws the same number of variates with each algorithm, prints
// their summaries next to the theoretical values and runs a two-sample
// Kolmogorov-Smirnov test between them.
func runCheck(w io.Writer, cfg tiltedstable.Config, p params) error {
	dist := tiltedstable.TiltedStable{Alpha: p.Alpha, Tilt: p.Tilt}

	samples := make(map[tiltedstable.Method][]float64, 2)
	for i, m := range []tiltedstable.Method{tiltedstable.DivideConquer, tiltedstable.DoubleRejection} {
		mcfg := cfg
		mcfg.Seed = tiltedstable.FixedSeed((*cfg.Seed + int64(i)) & 0xFFFFFFFF)
		xs, err := draw(mcfg, p, m)
		if err != nil {
			return errors.Wrapf(err, "%v", m)
		}
		samples[m] = xs
	}
	dc := tiltedstable.Summarize(samples[tiltedstable.DivideConquer])
	dr := tiltedstable.Summarize(samples[tiltedstable.DoubleRejection])

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "alpha=%g tilt=%g n=%d seed=%d\n", p.Alpha, p.Tilt, p.N, *cfg.Seed)
	fmt.Fprintln(tw, "\ttheory\tdivide-conquer\tdouble-rejection")
	fmt.Fprintf(tw, "mean\t%.6g\t%.6g\t%.6g\n", dist.Mean(), dc.Mean, dr.Mean)
	fmt.Fprintf(tw, "variance\t%.6g\t%.6g\t%.6g\n", dist.Variance(), dc.Variance, dr.Variance)
	fmt.Fprintf(tw, "skewness\t%.6g\t%.6g\t%.6g\n", dist.Skewness(), dc.Skewness, dr.Skewness)
	fmt.Fprintf(tw, "ex. kurtosis\t%.6g\t%.6g\t%.6g\n", dist.ExKurtosis(), dc.ExKurtosis, dr.ExKurtosis)
	for i, q := range tiltedstable.SummaryQuantiles {
		fmt.Fprintf(tw, "q%g\t\t%.6g\t%.6g\n", q, dc.Quantiles[i], dr.Quantiles[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ks := tiltedstable.TwoSampleKS(samples[tiltedstable.DivideConquer], samples[tiltedstable.DoubleRejection], p.Significance)
	verdict := "consistent"
	if ks.Reject {
		verdict = "REJECTED"
	}
	_, err := fmt.Fprintf(w, "KS D=%.5f critical(%g)=%.5f: %s\n", ks.D, p.Significance, ks.Critical, verdict)
	return err
}

// writeCSV writes one variate per row.
func writeCSV(w io.Writer, xs []float64) error {
	writer := csv.NewWriter(w)
	for _, x := range xs {
		if err := writer.Write([]string{strconv.FormatFloat(x, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
