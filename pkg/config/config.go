package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Tax        TaxConfig
	Accounting AccountingConfig
	Property   PropertyConfig
}

// TaxConfig carries the decomposition rates. Rates are fractions, not
// percentages (0.10 for 10 %).
type TaxConfig struct {
	VATRate     decimal.Decimal
	CityTaxRate decimal.Decimal
	CityTaxMode string
}

type AccountingConfig struct {
	ReceivableAccount string
	RevenueAccount    string
	CityTaxAccount    string
	StartVoucher      int
	UseCommaDecimal   bool
}

type PropertyConfig struct {
	TablePath string // optional CSV/YAML property table override
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	vatRate, err := getEnvAsRate("TAX_VAT_RATE", "0.10")
	if err != nil {
		return nil, err
	}
	cityTaxRate, err := getEnvAsRate("TAX_CITY_TAX_RATE", "0.032")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Tax: TaxConfig{
			VATRate:     vatRate,
			CityTaxRate: cityTaxRate,
			CityTaxMode: getEnv("TAX_CITY_TAX_MODE", "SIMPLE"),
		},
		Accounting: AccountingConfig{
			ReceivableAccount: getEnv("ACCOUNTING_RECEIVABLE_ACCOUNT", "200000"),
			RevenueAccount:    getEnv("ACCOUNTING_REVENUE_ACCOUNT", "400000"),
			CityTaxAccount:    getEnv("ACCOUNTING_CITY_TAX_ACCOUNT", "350000"),
			StartVoucher:      getEnvAsInt("ACCOUNTING_START_VOUCHER", 1),
			UseCommaDecimal:   getEnvAsBool("ACCOUNTING_COMMA_DECIMAL", false),
		},
		Property: PropertyConfig{
			TablePath: getEnv("PROPERTY_TABLE_PATH", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsRate(key, defaultValue string) (decimal.Decimal, error) {
	raw := getEnv(key, defaultValue)
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be a decimal rate: %w", key, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%s must be in [0,1): got %s", key, raw)
	}
	return rate, nil
}
