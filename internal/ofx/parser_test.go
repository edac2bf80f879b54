package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
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
<DTSERVER>20260315120000[0:GMT]
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
<CURDEF>PHP
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260110120000[0:GMT]
<TRNAMT>-200.00
<FITID>2026011001
<NAME>POS PURCHASE GROCERY MART
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260120120000[0:GMT]
<TRNAMT>-300.00
<FITID>2026012001
<NAME>Electric Bill Payment
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	parser := NewParser()

	txns, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX), "acct-1")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	first := txns[0]
	assert.Equal(t, "2026011001", first.ID)
	assert.Equal(t, "GROCERY MART", first.Name, "processor prefix stripped")
	assert.InDelta(t, -200.0, first.Amount, 0.001, "statement sign preserved")
	assert.Equal(t, "acct-1", first.AccountID)
	assert.Equal(t, 2026, first.Date.Year())
	assert.NotEmpty(t, first.Hash)

	second := txns[1]
	assert.Equal(t, "Electric Bill Payment", second.Name)
	assert.InDelta(t, -300.0, second.Amount, 0.001)
}

func TestParseFile_PreprocessesLooseSGML(t *testing.T) {
	parser := NewParser()

	// Leading blank lines and mixed-case severity both appear in real bank
	// exports.
	loose := "\n\n" + strings.ReplaceAll(sampleBankOFX, "<SEVERITY>INFO", "<SEVERITY>Info</SEVERITY>")
	txns, err := parser.ParseFile(context.Background(), strings.NewReader(loose), "acct-1")
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestParseFile_Invalid(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file"), "acct-1")
	assert.Error(t, err)
}
