package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
)

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "splitbill",
		Usage:     "split a shared bill between the people on it",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		// Exit codes are left to main so the app can run inside tests.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:      "split",
				Usage:     "split a bill read as JSON",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "bill JSON file, - for stdin",
						Value:   "-",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "output format: text or json",
						Value:   "text",
					},
				},
				Action: runSplit,
			},
			{
				Name:      "date",
				Usage:     "format an ISO date (YYYY-MM-DD)",
				ArgsUsage: "DATE",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("date takes exactly one argument", 2)
					}
					_, err := fmt.Fprintln(c.App.Writer, calculator.FormatDate(c.Args().First()))
					return err
				},
			},
			{
				Name:  "tip",
				Usage: "calculate the tip on a subtotal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subtotal", Usage: "bill subtotal", Required: true},
					&cli.StringFlag{Name: "percent", Usage: "tip percentage", Value: "0"},
				},
				Action: runTip,
			},
		},
	}
}

func runSplit(c *cli.Context) error {
	var r io.Reader = c.App.Reader
	if path := c.String("input"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open bill: %w", err)
		}
		defer f.Close()
		r = f
	}

	var input models.BillInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return fmt.Errorf("decode bill: %w", err)
	}

	out, err := calculator.SplitBill(input)
	if err != nil {
		return err
	}

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "text":
		return writeText(c.App.Writer, out)
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 2)
	}
}

func writeText(w io.Writer, out models.BillOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", out.Date, out.Location)
	fmt.Fprintf(tw, "Subtotal\t%s\t\n", money(out.SubTotal))
	fmt.Fprintf(tw, "Tip\t%s\t\n", money(out.Tip))
	fmt.Fprintf(tw, "Total\t%s\t\n", money(out.TotalAmount))
	for _, person := range out.Items {
		fmt.Fprintf(tw, "%s\t%s\t\n", person.Name, money(person.Amount))
	}
	return tw.Flush()
}

// money prints at least one fractional digit and never hides extra ones.
func money(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 1 {
		places = 1
	}
	return d.StringFixed(places)
}

func runTip(c *cli.Context) error {
	subTotal, err := decimal.NewFromString(c.String("subtotal"))
	if err != nil {
		return fmt.Errorf("subtotal: %w", err)
	}
	percent, err := decimal.NewFromString(c.String("percent"))
	if err != nil {
		return fmt.Errorf("percent: %w", err)
	}

	tip := calculator.CalculateTip(subTotal, percent)
	_, err = fmt.Fprintf(c.App.Writer, "tip %s\ntotal %s\n", money(tip), money(subTotal.Add(tip)))
	return err
}
