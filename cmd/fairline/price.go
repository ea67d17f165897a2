package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/fairline/internal/service"
)

var (
	flagSupremacy  string
	flagExpectancy string
	flagHome       string
	flagDraw       string
	flagAway       string
	flagTotalLine  string
	flagOver       string
	flagUnder      string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price the full derivative market sheet for one match",
	Long: `Calibrates the scoring model from either a supremacy/expectancy pair or a
quoted 1X2 + total-goals odds tuple, then prints every derivative market.`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().StringVar(&flagSupremacy, "supremacy", "", "Goal supremacy (home minus away expected goals)")
	priceCmd.Flags().StringVar(&flagExpectancy, "expectancy", "", "Total expected goals")
	priceCmd.Flags().StringVar(&flagHome, "home", "", "Home decimal odds (1X2)")
	priceCmd.Flags().StringVar(&flagDraw, "draw", "", "Draw decimal odds (1X2)")
	priceCmd.Flags().StringVar(&flagAway, "away", "", "Away decimal odds (1X2)")
	priceCmd.Flags().StringVar(&flagTotalLine, "line", "", "Total goals line, e.g. 2.5")
	priceCmd.Flags().StringVar(&flagOver, "over", "", "Over decimal odds at the line")
	priceCmd.Flags().StringVar(&flagUnder, "under", "", "Under decimal odds at the line")
}

func runPrice(cmd *cobra.Command, args []string) error {
	req, err := buildRequest()
	if err != nil {
		return err
	}

	sheet, err := pricing.Sheet(req)
	if err != nil {
		return fmt.Errorf("pricing failed: %w", err)
	}

	fmt.Printf("Sheet %s\n", sheet.ID)
	fmt.Printf("Rates  full %.3f/%.3f  1st %.3f/%.3f  2nd %.3f/%.3f\n\n",
		sheet.Full.Home, sheet.Full.Away,
		sheet.FirstHalf.Home, sheet.FirstHalf.Away,
		sheet.SecondHalf.Home, sheet.SecondHalf.Away)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MARKET\tSELECTION\tLINE\tPROB\tFAIR ODDS")
	for _, row := range sheet.Rows {
		line := ""
		if row.Line != nil {
			line = fmt.Sprintf("%+.2f", *row.Line)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%s\n",
			row.Market, row.Selection, line, row.Probability, row.FairOdds.String())
	}
	return w.Flush()
}

// buildRequest parses the odds flags through decimal so malformed input is
// rejected before any float conversion.
func buildRequest() (service.PriceRequest, error) {
	var req service.PriceRequest

	if flagSupremacy != "" || flagExpectancy != "" {
		sup, err := parseFlag("supremacy", flagSupremacy)
		if err != nil {
			return req, err
		}
		exp, err := parseFlag("expectancy", flagExpectancy)
		if err != nil {
			return req, err
		}
		req.Supremacy = sup
		req.Expectancy = exp
		return req, nil
	}

	fields := []struct {
		name  string
		value string
		dest  **float64
	}{
		{"home", flagHome, &req.HomeOdds},
		{"draw", flagDraw, &req.DrawOdds},
		{"away", flagAway, &req.AwayOdds},
		{"line", flagTotalLine, &req.TotalLine},
		{"over", flagOver, &req.OverOdds},
		{"under", flagUnder, &req.UnderOdds},
	}
	for _, f := range fields {
		parsed, err := parseFlag(f.name, f.value)
		if err != nil {
			return req, err
		}
		*f.dest = parsed
	}
	return req, nil
}

func parseFlag(name, value string) (*float64, error) {
	if value == "" {
		return nil, fmt.Errorf("flag --%s is required for this input shape", name)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("flag --%s: %w", name, err)
	}
	v := d.InexactFloat64()
	return &v, nil
}
