package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/staybooks/staybooks/internal/domain/export"
	"github.com/staybooks/staybooks/internal/domain/ingest/dialect"
	"github.com/staybooks/staybooks/internal/domain/ingest/xlsx"
	"github.com/staybooks/staybooks/internal/domain/property"
	"github.com/staybooks/staybooks/internal/domain/reconcile"
	"github.com/staybooks/staybooks/internal/domain/reservation"
	"github.com/staybooks/staybooks/internal/domain/settings"
	"github.com/staybooks/staybooks/internal/domain/tax"
	"github.com/staybooks/staybooks/pkg/config"
	"github.com/staybooks/staybooks/pkg/counter"
)

func newRootCmd(logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "staybooks",
		Short:         "Convert Booking.com and Airbnb exports into accounting CSV or invoices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd(logger))
	root.AddCommand(newInspectCmd())
	return root
}

func newConvertCmd(logger *slog.Logger) *cobra.Command {
	var (
		dialectName  string
		format       string
		ledgerPath   string
		targetMonth  string
		startVoucher int
		commaDecimal bool
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "convert <export-file>",
		Short: "Parse an export file and emit accounting CSV or invoice JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			result, err := parseInput(args[0], ledgerPath, dialect.Dialect(dialectName), dialect.Options{TargetMonth: targetMonth})
			if err != nil {
				return err
			}
			logger.Info("parsed export", "file", args[0], "summary", result.Summary.String())
			for _, invalid := range result.Invalid {
				logger.Warn("row excluded", "reasons", strings.Join(invalid.Reasons, "; "))
			}

			resolver, err := loadResolver(cfg.Property.TablePath)
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "accounting":
				if startVoucher == 0 {
					startVoucher = cfg.Accounting.StartVoucher
				}
				opts := export.AccountingOptions{
					UseCommaDecimal: commaDecimal || cfg.Accounting.UseCommaDecimal,
					Accounts: export.Accounts{
						Receivable: cfg.Accounting.ReceivableAccount,
						Revenue:    cfg.Accounting.RevenueAccount,
						CityTax:    cfg.Accounting.CityTaxAccount,
					},
					VATRate:     cfg.Tax.VATRate,
					CityTaxRate: cfg.Tax.CityTaxRate,
				}
				out = export.GenerateAccountingCSVWith(result.Valid, counter.NewSequence(startVoucher), resolver, opts)
			case "invoices":
				out, err = renderInvoiceJSON(cmd, result.Valid, resolver, cfg)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output format %q", format)
			}

			if outPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			return os.WriteFile(outPath, []byte(out), 0o644)
		},
	}

	cmd.Flags().StringVar(&dialectName, "dialect", string(dialect.BookingReservations), "export dialect: booking-reservations, booking-payout, airbnb")
	cmd.Flags().StringVar(&format, "format", "accounting", "output format: accounting or invoices")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "ledger CSV for the paired ledger+reservations format")
	cmd.Flags().StringVar(&targetMonth, "month", "", "restrict booking-payout rows to a YYYY-MM checkout month")
	cmd.Flags().IntVar(&startVoucher, "start-voucher", 0, "first voucher number (defaults to ACCOUNTING_START_VOUCHER)")
	cmd.Flags().BoolVar(&commaDecimal, "comma-decimal", false, "use ',' as the decimal separator in amounts")
	cmd.Flags().StringVar(&outPath, "out", "", "output file (stdout when empty)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var dialectName string

	cmd := &cobra.Command{
		Use:   "inspect <export-file>",
		Short: "Show how a file's header would be interpreted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			diag, err := dialect.Inspect(data, dialect.Dialect(dialectName))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "delimiter: %q\nrows: %d\n", diag.Delimiter, diag.RowCount)
			for field, idx := range diag.Mapped {
				fmt.Fprintf(cmd.OutOrStdout(), "mapped: %s -> column %d\n", field, idx)
			}
			for _, col := range diag.Unclaimed {
				fmt.Fprintf(cmd.OutOrStdout(), "unclaimed: %s\n", col)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectName, "dialect", string(dialect.BookingReservations), "export dialect")
	return cmd
}

// parseInput routes to the paired ledger+reservations parse when a ledger
// file is given, and otherwise picks CSV or XLSX by file extension.
func parseInput(path, ledgerPath string, d dialect.Dialect, opts dialect.Options) (*reservation.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if ledgerPath != "" {
		ledgerData, err := os.ReadFile(ledgerPath)
		if err != nil {
			return nil, err
		}
		merged, err := reconcile.ParseLedgerAndReservations(ledgerData, data)
		if err != nil {
			return nil, err
		}
		return merged.ParseResult, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsx.ParseReservationExport(data, d, opts)
	}
	return dialect.ParseReservationExport(data, d, opts)
}

func loadResolver(tablePath string) (*property.Resolver, error) {
	if tablePath == "" {
		return property.NewResolver(property.DefaultTable()), nil
	}

	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, err
	}

	var table property.Table
	if strings.EqualFold(filepath.Ext(tablePath), ".csv") {
		table, err = property.LoadTableCSV(strings.NewReader(string(data)))
	} else {
		table, err = property.LoadTableYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return property.NewResolver(table), nil
}

// renderInvoiceJSON builds invoices with a transient in-memory counter.
// The durable counter store belongs to the surrounding deployment.
func renderInvoiceJSON(cmd *cobra.Command, reservations []reservation.Unified, resolver *property.Resolver, cfg *config.Config) (string, error) {
	prop := settings.Property{
		ID:            "default",
		InvoicePrefix: "INV",
		VATRate:       cfg.Tax.VATRate,
		CityTaxRate:   cfg.Tax.CityTaxRate,
		CityTaxMode:   tax.CityTaxMode(cfg.Tax.CityTaxMode),
	}
	if len(reservations) > 0 {
		prop.Code = resolver.Resolve(reservations[0].PropertyName, reservations[0].Source)
	}

	invoices, err := export.BuildInvoices(cmd.Context(), reservations, prop, settings.Company{}, counter.NewMemoryInvoiceStore(), time.Now())
	if err != nil {
		return "", err
	}

	encoded, err := json.MarshalIndent(invoices, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded) + "\n", nil
}
