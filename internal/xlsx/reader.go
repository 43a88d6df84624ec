// Package xlsx reads and writes the spreadsheets the commands exchange:
// category lists, transaction tables, and categorized output.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/mentat/internal/common"
	"github.com/Veraticus/mentat/internal/model"
)

// RemarkColumnName is the transaction column holding the raw remark text.
const RemarkColumnName = "REMARK_CLEAN"

// TransactionTable is a transactions sheet as read from disk. Header and
// Rows keep every original column untouched so writers can reproduce the
// input alongside derived columns.
type TransactionTable struct {
	Header       []string
	Rows         [][]string
	RemarkColumn int
}

// ReadCategories reads the category names from the first column of the
// first sheet, skipping the header row and blank cells.
func ReadCategories(path string) ([]string, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}

	var categories []string
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if name := cell(row, 0); name != "" {
			categories = append(categories, name)
		}
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoCategories, path)
	}

	return categories, nil
}

// ReadTransactions reads the transactions sheet. The header row must carry
// a REMARK_CLEAN column; all other columns pass through untouched.
func ReadTransactions(path string) (*TransactionTable, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, fmt.Errorf("reading transactions file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoTransactions, path)
	}

	remarkCol := -1
	for i, name := range rows[0] {
		if name == RemarkColumnName {
			remarkCol = i
			break
		}
	}
	if remarkCol < 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, RemarkColumnName)
	}

	if len(rows) == 1 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoTransactions, path)
	}

	return &TransactionTable{
		Header:       rows[0],
		Rows:         rows[1:],
		RemarkColumn: remarkCol,
	}, nil
}

// Transactions derives the ordered transaction slice from the table. Rows
// shorter than the remark column read as an empty remark.
func (t *TransactionTable) Transactions() []model.Transaction {
	txns := make([]model.Transaction, len(t.Rows))
	for i, row := range t.Rows {
		txns[i] = model.Transaction{
			Remark: cell(row, t.RemarkColumn),
			Index:  i,
		}
	}
	return txns
}

// Remarks returns the raw remark column in row order.
func (t *TransactionTable) Remarks() []string {
	remarks := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		remarks[i] = cell(row, t.RemarkColumn)
	}
	return remarks
}

// readRows opens a workbook and returns every row of its first sheet.
func readRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	return f.GetRows(sheets[0])
}

// cell reads a column from a row, tolerating the short rows excelize
// returns when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
