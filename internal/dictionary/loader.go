// Package dictionary loads the abbreviation dictionary used for remark expansion.
package dictionary

import (
	"fmt"
	"strings"

	"github.com/Veraticus/mentat/internal/common"
	"github.com/xuri/excelize/v2"
)

// Column headers the dictionary sheet must carry.
const (
	FullWordColumn     = "Full_words"
	AbbreviationColumn = "Abbreviation"
)

// Map associates an abbreviation with its candidate full words. Keys are
// exact-match tokens: no case folding or whitespace normalization is
// applied at load or lookup. Candidate order follows dictionary row order
// and duplicates are kept. Every key maps to a non-empty list.
type Map map[string][]string

// Candidates returns the candidate full words for a token, nil when the
// token is not in the dictionary.
func (m Map) Candidates(token string) []string {
	return m[token]
}

// Len returns the number of distinct abbreviations.
func (m Map) Len() int {
	return len(m)
}

// Load reads an xlsx dictionary whose first sheet carries Full_words and
// Abbreviation columns, the latter holding a ", "-separated synonym list.
// Each synonym maps to the row's full word; a synonym appearing in several
// rows accumulates all of their full words in row order.
func Load(path string) (Map, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDictionaryFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrDictionaryFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDictionaryFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s has no header row", common.ErrDictionaryFormat, sheets[0])
	}

	fullCol, abbrCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case FullWordColumn:
			fullCol = i
		case AbbreviationColumn:
			abbrCol = i
		}
	}
	if fullCol < 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, FullWordColumn)
	}
	if abbrCol < 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, AbbreviationColumn)
	}

	m := make(Map)
	for _, row := range rows[1:] {
		fullWord := cell(row, fullCol)
		if fullWord == "" {
			continue
		}
		for _, abbr := range strings.Split(cell(row, abbrCol), ", ") {
			if abbr == "" {
				continue
			}
			m[abbr] = append(m[abbr], fullWord)
		}
	}

	return m, nil
}

// cell reads a column from a row, tolerating the short rows excelize
// returns when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
