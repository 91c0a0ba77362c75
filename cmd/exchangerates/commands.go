package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"exchange-rates/internal"
	"exchange-rates/internal/exchangerates"
	"exchange-rates/internal/logger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

// app carries what every subcommand needs once the root command has loaded the configuration.
type app struct {
	v       *viper.Viper
	envFile string
	cfg     Config
	log     *logrus.Logger
	client  *exchangerates.Client
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}

	root := &cobra.Command{
		Use:           "exchangerates",
		Short:         "Query currency exchange rates and serve them over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(a.v, a.envFile, cmd.Flags().Changed("env-file"))
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr())
			a.client = exchangerates.New(cfg.AccessKey,
				exchangerates.WithBaseURL(cfg.BaseURL),
				exchangerates.WithLogger(a.log),
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Path to a dotenv file")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(ratesCmd(a), averageCmd(a), convertCmd(a), serveCmd(a), keysCmd(a))
	return root
}

type queryFlags struct {
	base    string
	symbols []string
	at      string
	from    string
	to      string
	latest  bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.base, "base", "", "Base currency")
	cmd.Flags().StringSliceVar(&f.symbols, "symbols", nil, "Target currencies, comma separated")
	cmd.Flags().StringVar(&f.at, "at", "", "Single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.latest, "latest", false, "Latest rates, clears any date")
}

func (f *queryFlags) query() (*internal.Query, error) {
	var q internal.Query

	if f.base != "" {
		if err := q.SetBase(f.base); err != nil {
			return nil, err
		}
	}
	if len(f.symbols) > 0 {
		if err := q.SetSymbols(f.symbols...); err != nil {
			return nil, err
		}
	}

	steps := []struct {
		raw string
		set func(internal.Date)
	}{
		{f.at, q.SetAt},
		{f.from, q.SetFrom},
		{f.to, q.SetTo},
	}
	for _, s := range steps {
		if s.raw == "" {
			continue
		}
		d, err := internal.ParseDate(s.raw)
		if err != nil {
			return nil, err
		}
		s.set(d)
	}

	if f.latest {
		q.SetLatest()
	}
	return &q, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ratesCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Fetch latest, single-day or range rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			out, err := a.client.Fetch(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f.register(cmd)
	return cmd
}

func averageCmd(a *app) *cobra.Command {
	var f queryFlags
	var places int
	cmd := &cobra.Command{
		Use:   "average",
		Short: "Average rates over a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			var p *int
			if cmd.Flags().Changed("places") {
				p = &places
			}
			out, err := a.client.Average(cmd.Context(), q, p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&places, "places", 0, "Round averages to this many decimal places")
	return cmd
}

func convertCmd(a *app) *cobra.Command {
	var base, target, at string
	cmd := &cobra.Command{
		Use:   "convert AMOUNT",
		Short: "Convert an amount with a single-day rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(strings.TrimSpace(args[0]))
			if err != nil {
				return internal.InvalidArgument("amount must be a number, got %q", args[0])
			}

			f := queryFlags{base: base, symbols: []string{target}, at: at}
			q, err := f.query()
			if err != nil {
				return err
			}
			out, err := a.client.Convert(cmd.Context(), q, amount)
			if err != nil {
				return err
			}

			from := q.Base()
			if from == "" {
				from = internal.EUR
			}
			to := q.Symbols()[0]
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n",
				amount.StringFixed(scaleOf(from)), from, out.StringFixed(scaleOf(to)), to)
			return err
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Currency of the amount")
	cmd.Flags().StringVar(&target, "to", "", "Currency to convert into")
	cmd.Flags().StringVar(&at, "at", "", "Day of the rate (YYYY-MM-DD), latest when empty")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// scaleOf returns the number of minor-unit digits conventionally shown for code.
func scaleOf(code internal.CurrencyCode) int32 {
	unit, err := code.Unit()
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}
