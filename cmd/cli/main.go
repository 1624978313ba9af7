package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"mbtidash/domain/mbti"
	"mbtidash/internal/config"
	"mbtidash/internal/dashboard"
	"mbtidash/internal/dataset"
	"mbtidash/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// options are the flags shared by every command.
type options struct {
	file      string
	reference string
	top       int
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{
		file:      config.DefaultDataFile,
		reference: config.DefaultReferenceCountry,
		top:       config.DefaultTopN,
	}
	if cfg, err := config.Load(); err == nil {
		opts.file = cfg.Data.File
		opts.reference = cfg.Data.ReferenceCountry
		opts.top = cfg.Data.TopN
	}

	rootCmd := &cobra.Command{
		Use:           "mbtidash-cli",
		Short:         "Query the MBTI-by-country table from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.file, "file", opts.file, "CSV or XLSX data file")
	rootCmd.PersistentFlags().StringVar(&opts.reference, "reference", opts.reference, "Country pinned to the top ranking")
	rootCmd.PersistentFlags().IntVar(&opts.top, "top", opts.top, "Number of countries in the ranking")

	rootCmd.AddCommand(
		newCountriesCmd(opts),
		newCountryCmd(opts),
		newAverageCmd(opts),
		newTopCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

// loadTable reads the data file and reports normalization warnings on stderr.
func loadTable(cmd *cobra.Command, opts *options) (*dataset.Table, error) {
	table, err := dataset.Load(opts.file)
	if err != nil {
		return nil, err
	}
	for _, w := range table.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
	}
	return table, nil
}

func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

func newCountriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List countries in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd, opts)
			if err != nil {
				return err
			}
			for _, c := range table.Countries() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newCountryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "country NAME",
		Short: "Show one country's MBTI distribution, largest share first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd, opts)
			if err != nil {
				return err
			}
			values, err := dataset.CountryDistribution(table, args[0])
			if err != nil {
				return err
			}
			printTypeValues(cmd.OutOrStdout(), values)
			return nil
		},
	}
}

func newAverageCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "average",
		Short: "Show the mean share of each type across countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd, opts)
			if err != nil {
				return err
			}
			values, err := dataset.GlobalAverage(table)
			if err != nil {
				return err
			}
			printTypeValues(cmd.OutOrStdout(), values)
			return nil
		},
	}
}

func newTopCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "top TYPE",
		Short: "Rank countries by one type, with the reference country pinned",
		Long: `Rank countries by the share of one MBTI type.

The reference country (--reference) is appended when it is not already in the
ranking and is marked with an asterisk.

Example: mbtidash-cli top INTJ --top 10 --reference "South Korea"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd, opts)
			if err != nil {
				return err
			}
			values, err := dataset.TopWithReference(table, mbti.ParseType(args[0]), opts.top, opts.reference)
			if err != nil {
				return err
			}
			p := printer()
			for _, v := range values {
				mark := " "
				if v.Reference {
					mark = "*"
				}
				p.Fprintf(cmd.OutOrStdout(), "%s %-24s %6.2f\n", mark, v.Country, v.Value)
			}
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	var country, typ string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the three dashboard views to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := dashboard.NewBuilder(dataset.NewStore(opts.file, 0), opts.reference, opts.top)
			page := builder.Build(context.Background(), mbti.Selection{Country: country, Type: mbti.Type(typ)})
			for _, w := range page.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w.Message)
			}
			if page.Fatal != "" {
				return errors.New(page.FatalCode, page.Fatal)
			}

			// Build the workbook in memory so a failure leaves no partial file behind.
			var buf bytes.Buffer
			if err := dashboard.WriteWorkbook(&buf, page); err != nil {
				return err
			}
			if err := os.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %s", args[0])
			}
			printer().Fprintf(cmd.OutOrStdout(), "wrote %s (country %s, type %s)\n", args[0], page.Selection.Country, page.Selection.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country for the distribution sheet (default: first in file)")
	cmd.Flags().StringVar(&typ, "type", "", "MBTI type for the ranking sheet (default: first alphabetically)")
	return cmd
}

func printTypeValues(out io.Writer, values []mbti.TypeValue) {
	p := printer()
	for _, v := range values {
		p.Fprintf(out, "%-5s %6.2f\n", v.Type, v.Value)
	}
}
