package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/profootballhighlights/pfh-scoreboard/internal/standings"
	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

const (
	defaultWikiAPI = "https://en.wikipedia.org/w/api.php"
	userAgent      = "profootballhighlights/1.0 (+https://profootballhighlights.netlify.app)"

	formatText = "text"
	formatJSON = "json"
)

type options struct {
	year    int
	format  string
	wikiAPI string
	timeout time.Duration
	verbose bool
}

// output is the JSON shape printed with --format json.
type output struct {
	Source string               `json:"source"`
	Titles []string             `json:"titles"`
	AFC    []standings.Division `json:"afc"`
	NFC    []standings.Division `json:"nfc"`
	Report standings.Report     `json:"report"`
}

// newRootCmd builds the command; httpClient may be nil to use the default transport.
func newRootCmd(out io.Writer, httpClient upstream.Doer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Fetch and print NFL division standings from Wikipedia",
		Long: `Fetches the AFC and NFC standings templates from Wikipedia, falling back
to the prior season when the current one is not published yet, and prints
the parsed division tables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, httpClient, opts)
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "Season to fetch (default: current year, then prior year)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format: text or json")
	cmd.Flags().StringVar(&opts.wikiAPI, "wiki-api", defaultWikiAPI, "MediaWiki API endpoint")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 9*time.Second, "Per-request timeout")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Print the parse report")

	return cmd
}

func run(ctx context.Context, out io.Writer, httpClient upstream.Doer, opts *options) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != formatText && format != formatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fetcher := standings.NewFetcher(standings.FetcherConfig{
		APIURL:         opts.wikiAPI,
		RequestTimeout: opts.timeout,
		Client: upstream.NewClient(upstream.Options{
			Name:       "wikipedia",
			UserAgent:  userAgent,
			Accept:     "application/json",
			Timeout:    opts.timeout,
			HTTPClient: httpClient,
		}),
	})

	var (
		res standings.Result
		err error
	)
	if opts.year > 0 {
		res, err = fetcher.FetchYear(ctx, opts.year)
	} else {
		res, err = fetcher.Fetch(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetching standings: %w", err)
	}

	conf, report, err := standings.Parse(res.HTML)
	if err != nil {
		return fmt.Errorf("parsing standings: %w", err)
	}

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(output{Source: res.Source, Titles: res.Titles, AFC: conf.AFC, NFC: conf.NFC, Report: report})
	}
	return writeText(out, res, conf, report, opts.verbose)
}

func writeText(out io.Writer, res standings.Result, conf standings.Conferences, report standings.Report, verbose bool) error {
	fmt.Fprintf(out, "%s: %s\n", res.Source, strings.Join(res.Titles, ", "))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, key := range []string{standings.AFC, standings.NFC} {
		for _, div := range conf.Conference(key) {
			fmt.Fprintf(tw, "\n%s\n", div.Name)
			fmt.Fprintln(tw, "Team\tW\tL\tT\tPct")
			for _, row := range div.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Team, row.W, row.L, row.T, row.Pct)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(out, "\ntables: %d seen, %d accepted; rows: %d accepted, %d dropped\n",
			report.TablesSeen, report.TablesAccepted, report.RowsAccepted, report.DroppedRows())
	}
	return nil
}
