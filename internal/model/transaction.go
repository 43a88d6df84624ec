// Package model defines the core data types shared across the application.
package model

import "time"

// Transaction is a single row from the transactions input.
// Identity is positional: Index is the zero-based position in the input
// sequence, assigned once at load. Row order is preserved end-to-end.
//
// Date, Account and Amount are only filled by the OFX importer; the xlsx
// pipeline keeps extra columns in the table itself and leaves them
// zero-valued here.
type Transaction struct {
	Date     time.Time
	Remark   string // Raw remark text (REMARK_CLEAN)
	Expanded string // Remark after abbreviation expansion; empty until expanded
	Account  string
	Amount   float64
	Index    int
}
