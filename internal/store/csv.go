// Package store reads the flat-file feeds backing the dashboard: a payments
// table and a merchant-loyalty table. Each call re-reads the file, matching
// the per-request recompute model; there is no caching here.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/snaptrust/trust-growth-backend/internal/model"
)

// Loader reads the two CSV feeds. Malformed rows are logged and skipped
// rather than failing the whole load.
type Loader struct {
	paymentsPath  string
	merchantsPath string
}

func NewLoader(paymentsPath, merchantsPath string) *Loader {
	return &Loader{paymentsPath: paymentsPath, merchantsPath: merchantsPath}
}

// Payments parses the payments feed. Expected header: PaymentID,
// CustomerID, CustomerName, MerchantID, MerchantName, PaymentDate,
// PaymentAmount, PaymentStatus, DisputeFlag, DefaultFlag.
func (l *Loader) Payments() ([]model.Transaction, error) {
	rows, cols, err := readTable(l.paymentsPath)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	txns := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		amount, err := strconv.ParseFloat(cols.get(row, "PaymentAmount"), 64)
		if err != nil {
			log.Warn().Str("file", l.paymentsPath).Int("row", i+2).Err(err).
				Msg("skipping payment row with bad amount")
			continue
		}

		txns = append(txns, model.Transaction{
			PaymentID:    cols.get(row, "PaymentID"),
			CustomerID:   cols.get(row, "CustomerID"),
			CustomerName: cols.get(row, "CustomerName"),
			MerchantID:   cols.get(row, "MerchantID"),
			MerchantName: cols.get(row, "MerchantName"),
			PaymentDate:  cols.get(row, "PaymentDate"),
			Amount:       amount,
			Status:       model.PaymentStatus(cols.get(row, "PaymentStatus")),
			DisputeFlag:  cols.get(row, "DisputeFlag") == "1",
			DefaultFlag:  cols.get(row, "DefaultFlag") == "1",
		})
	}
	return txns, nil
}

// Merchants parses the merchant-loyalty feed.
func (l *Loader) Merchants() ([]model.MerchantProfile, error) {
	rows, cols, err := readTable(l.merchantsPath)
	if err != nil {
		return nil, fmt.Errorf("load merchants: %w", err)
	}

	profiles := make([]model.MerchantProfile, 0, len(rows))
	for i, row := range rows {
		p := model.MerchantProfile{
			MerchantID:   cols.get(row, "MerchantID"),
			MerchantName: cols.get(row, "MerchantName"),
		}

		ok := true
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"RepaymentRate", &p.RepaymentRate},
			{"DisputeRate", &p.DisputeRate},
			{"DefaultRate", &p.DefaultRate},
			{"TransactionVolume", &p.TransactionVolume},
			{"EngagementScore", &p.EngagementScore},
			{"ComplianceScore", &p.ComplianceScore},
			{"ResponsivenessScore", &p.ResponsivenessScore},
		} {
			v, err := strconv.ParseFloat(cols.get(row, f.name), 64)
			if err == nil && math.IsNaN(v) {
				err = fmt.Errorf("NaN value")
			}
			if err != nil {
				log.Warn().Str("file", l.merchantsPath).Int("row", i+2).
					Str("column", f.name).Err(err).
					Msg("skipping merchant row with bad numeric value")
				ok = false
				break
			}
			*f.dst = v
		}
		if !ok {
			continue
		}

		// Tenure and exclusivity default to zero when unparseable.
		p.TenureMonths, _ = strconv.Atoi(cols.get(row, "TenureMonths"))
		if cols.get(row, "ExclusivityFlag") == "1" {
			p.ExclusivityFlag = 1
		}

		profiles = append(profiles, p)
	}
	return profiles, nil
}

// columns maps header names to their positions.
type columns map[string]int

func (c columns) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func readTable(path string) ([][]string, columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(columns, len(header))
	for i, name := range header {
		cols[name] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, cols, nil
}
