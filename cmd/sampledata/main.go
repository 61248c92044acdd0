// Command sampledata writes synthetic CRM accounts and contacts exports for trying the
// tracker without real data.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/trip-tracker/internal/sampledata"
	"github.com/example/trip-tracker/internal/trip"
	"github.com/example/trip-tracker/internal/workbook"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sampledata", flag.ContinueOnError)
	fs.SetOutput(stderr)
	accountsPath := fs.String("accounts", "sample_accounts.xlsx", "accounts export to write")
	contactsPath := fs.String("contacts", "sample_contacts.xlsx", "contacts export to write; blank skips it")
	rows := fs.Int("rows", sampledata.DefaultAccounts, "number of accounts")
	perAccount := fs.Int("contacts-per-account", sampledata.DefaultContactsPerAccount, "contacts generated per account")
	seed := fs.Int64("seed", trip.DefaultSeed, "random seed")
	gapRate := fs.Float64("gap-rate", sampledata.DefaultGapRate, "probability an optional field is left blank (0..1)")
	cities := fs.String("cities", strings.Join(sampledata.DefaultCities(), ","), "comma separated HQ cities")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *rows <= 0 {
		fmt.Fprintln(stderr, "-rows must be positive")
		return 2
	}
	if *gapRate < 0 || *gapRate > 1 {
		fmt.Fprintln(stderr, "-gap-rate must be between 0 and 1")
		return 2
	}
	if strings.TrimSpace(*accountsPath) == "" {
		fmt.Fprintln(stderr, "-accounts is required")
		return 2
	}

	exports := sampledata.Generate(sampledata.Options{
		Accounts:           *rows,
		ContactsPerAccount: *perAccount,
		Cities:             splitList(*cities),
		GapRate:            *gapRate,
		Seed:               *seed,
	})

	if err := workbook.WriteTableFile(*accountsPath, "Accounts", exports.Accounts); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "✓ %d accounts written to %s\n", exports.Accounts.Len(), *accountsPath)

	if *contactsPath == "" {
		return 0
	}
	if err := workbook.WriteTableFile(*contactsPath, "Contacts", exports.Contacts); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "✓ %d contacts written to %s\n", exports.Contacts.Len(), *contactsPath)
	return 0
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
