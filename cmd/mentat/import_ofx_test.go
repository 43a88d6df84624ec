package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/mentat/internal/testutil"
)

// Sample OFX files for testing.
const testOFXJanuary = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>JAN01
<NAME>STARBUCKS
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const testOFXFebruary = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240201120000[0:GMT]
<DTEND>20240228120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240215120000[0:GMT]
<TRNAMT>-25.50
<FITID>FEB01
<NAME>STARBUCKS
<MEMO>CARD 4421
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240220120000[0:GMT]
<TRNAMT>-100.00
<FITID>FEB02
<NAME>WHOLE FOODS
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>900.00
<DTASOF>20240228120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestRunImportOFX(t *testing.T) {
	tempDir := t.TempDir()

	file1 := filepath.Join(tempDir, "2024-01.qfx")
	file2 := filepath.Join(tempDir, "2024-02.qfx")
	require.NoError(t, os.WriteFile(file1, []byte(testOFXJanuary), 0o644))
	require.NoError(t, os.WriteFile(file2, []byte(testOFXFebruary), 0o644))

	output := filepath.Join(tempDir, "transactions.xlsx")
	cmd := importOFXCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("output", output))

	require.NoError(t, runImportOFX(cmd, []string{filepath.Join(tempDir, "*.qfx")}))

	rows := testutil.ReadXLSX(t, output)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"DATE", "AMOUNT", "ACCOUNT", "REMARK_CLEAN"}, rows[0])
	assert.Equal(t, []string{"2024-01-15", "-25.5", "1234567890", "STARBUCKS"}, rows[1])
	assert.Equal(t, []string{"2024-02-15", "-25.5", "1234567890", "STARBUCKS CARD 4421"}, rows[2])
	assert.Equal(t, []string{"2024-02-20", "-100", "1234567890", "WHOLE FOODS"}, rows[3])
}

func TestRunImportOFXSkipsUnparseableFiles(t *testing.T) {
	tempDir := t.TempDir()

	good := filepath.Join(tempDir, "good.qfx")
	bad := filepath.Join(tempDir, "bad.qfx")
	require.NoError(t, os.WriteFile(good, []byte(testOFXJanuary), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("not valid OFX"), 0o644))

	output := filepath.Join(tempDir, "transactions.xlsx")
	cmd := importOFXCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("output", output))

	require.NoError(t, runImportOFX(cmd, []string{filepath.Join(tempDir, "*.qfx")}))

	rows := testutil.ReadXLSX(t, output)
	require.Len(t, rows, 2)
	assert.Equal(t, "STARBUCKS", rows[1][3])
}

func TestRunImportOFXNoFiles(t *testing.T) {
	cmd := importOFXCmd()
	cmd.SetContext(context.Background())

	err := runImportOFX(cmd, []string{filepath.Join(t.TempDir(), "*.qfx")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files found")
}
