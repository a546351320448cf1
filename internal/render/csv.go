package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"expense-view/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow is the exported shape of a transaction.
type csvRow struct {
	ID          int    `csv:"ID"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"TransactionType"`
	Category    string `csv:"Category"`
	Essential   string `csv:"Essential"`
	Account     string `csv:"Account"`
	Notes       string `csv:"Notes"`
	Tags        string `csv:"Tags"`
}

func toCSVRow(tx models.Transaction) csvRow {
	return csvRow{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Type:        tx.Kind(),
		Category:    tx.CategoryName(),
		Essential:   tx.TypeLabel(),
		Account:     tx.AccountName(),
		Notes:       tx.Notes,
		Tags:        strings.Join(tx.Tags, ";"),
	}
}

// WriteCSV writes transactions in the given order, with a header row.
func WriteCSV(w io.Writer, txs []models.Transaction, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ','
	}
	rows := make([]csvRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, toCSVRow(tx))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
