package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/mentat/internal/model"
)

// DefaultCategorizedName is the output workbook written by categorize.
const DefaultCategorizedName = "categorized_transactions.xlsx"

// ExpandedColumnName is the derived column appended to expanded output.
const ExpandedColumnName = "REMARK_EXTENDED"

// Columns written by WriteImported.
const (
	dateColumnName    = "DATE"
	amountColumnName  = "AMOUNT"
	accountColumnName = "ACCOUNT"
)

// WriteCategorized writes the categorized records, one row per record in
// order, under a transaction/category header.
func WriteCategorized(path string, records []model.ClassifiedRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, []any{"transaction", "category"}); err != nil {
		return fmt.Errorf("writing categorized header: %w", err)
	}
	for i, record := range records {
		if err := setRow(f, sheet, i+2, []any{record.Transaction, record.Category}); err != nil {
			return fmt.Errorf("writing categorized row %d: %w", i+1, err)
		}
	}

	return save(f, path)
}

// WriteExpanded writes the original transaction table with every column
// intact plus a trailing column carrying each transaction's expanded remark.
func WriteExpanded(path string, table *TransactionTable, transactions []model.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := make([]any, 0, len(table.Header)+1)
	for _, name := range table.Header {
		header = append(header, name)
	}
	header = append(header, ExpandedColumnName)
	if err := setRow(f, sheet, 1, header); err != nil {
		return fmt.Errorf("writing expanded header: %w", err)
	}

	for i, row := range table.Rows {
		values := make([]any, 0, len(table.Header)+1)
		for col := range table.Header {
			values = append(values, cell(row, col))
		}
		expanded := ""
		if i < len(transactions) {
			expanded = transactions[i].Expanded
		}
		values = append(values, expanded)
		if err := setRow(f, sheet, i+2, values); err != nil {
			return fmt.Errorf("writing expanded row %d: %w", i+1, err)
		}
	}

	return save(f, path)
}

// WriteImported writes transactions parsed from bank exports as a sheet the
// categorize command accepts, raw remarks under REMARK_CLEAN.
func WriteImported(path string, transactions []model.Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := []any{dateColumnName, amountColumnName, accountColumnName, RemarkColumnName}
	if err := setRow(f, sheet, 1, header); err != nil {
		return fmt.Errorf("writing imported header: %w", err)
	}
	for i, txn := range transactions {
		values := []any{
			txn.Date.Format("2006-01-02"),
			txn.Amount,
			txn.Account,
			txn.Remark,
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return fmt.Errorf("writing imported row %d: %w", i+1, err)
		}
	}

	return save(f, path)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cellName, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName, value); err != nil {
			return err
		}
	}
	return nil
}

func save(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
