package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pocket-ledger/internal/ledger"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/report"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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
<DTEND>20240229120000[0:GMT]
<STMTTRN>
<TRNTYPE>DIRECTDEP
<DTPOSTED>20240101120000[0:GMT]
<TRNAMT>1000.00
<FITID>2024010101
<NAME>ACME PAYROLL
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-200.00
<FITID>2024011501
<NAME>POS PURCHASE Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>0.00
<FITID>2024013101
<NAME>MONTHLY FEE WAIVED
</STMTTRN>
<STMTTRN>
<TRNTYPE>ATM
<DTPOSTED>20240220120000[0:GMT]
<TRNAMT>-50.00
<FITID>2024022001
<NAME>ATM WITHDRAWAL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>750.00
<DTASOF>20240229120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
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
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>AMAZON.COM*RT4Y7HG2
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240112120000[0:GMT]
<TRNAMT>15.00
<FITID>CC2024011201
<NAME>CREDIT
<MEMO>NETFLIX.COM REFUND
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-30.99
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		expectedCount int
		expectError   bool
	}{
		{
			name:          "valid bank statement",
			data:          sampleBankOFX,
			expectedCount: 4,
		},
		{
			name:          "valid credit card statement",
			data:          sampleCreditCardOFX,
			expectedCount: 2,
		},
		{
			name:        "invalid OFX data",
			data:        "This is not OFX data",
			expectError: true,
		},
		{
			name:        "empty OFX",
			data:        "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(tt.data))

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	payroll := transactions[0]
	assert.Equal(t, model.KindIncome, payroll.Kind())
	assert.Equal(t, "1000", payroll.Amount().String())
	assert.Equal(t, "Salary", payroll.Category())
	assert.Equal(t, "01-01-2024", payroll.Date())
	assert.Equal(t, "ACME PAYROLL", payroll.Description())

	groceries := transactions[1]
	assert.Equal(t, model.KindExpense, groceries.Kind())
	assert.Equal(t, "200", groceries.Amount().String())
	assert.Equal(t, Uncategorized, groceries.Category())
	assert.Equal(t, "15-01-2024", groceries.Date())
	assert.Equal(t, "Whole Foods Market", groceries.Description())

	assert.True(t, transactions[2].Amount().IsZero())
	assert.Equal(t, "Bank Fees", transactions[2].Category())

	atm := transactions[3]
	assert.Equal(t, model.KindExpense, atm.Kind())
	assert.Equal(t, "Cash & ATM", atm.Category())
	assert.Equal(t, "02-2024", atm.MonthKey())
}

func TestParseCreditCardTransactions(t *testing.T) {
	transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	assert.Equal(t, model.KindExpense, transactions[0].Kind())
	assert.Equal(t, "45.99", transactions[0].Amount().String())
	assert.Equal(t, "AMAZON.COM*RT4Y7HG2", transactions[0].Description())

	refund := transactions[1]
	assert.Equal(t, model.KindIncome, refund.Kind())
	assert.Equal(t, "15", refund.Amount().String())
	assert.Equal(t, "NETFLIX.COM REFUND", refund.Description(), "generic NAME falls back to MEMO")
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreprocessOFX(t *testing.T) {
	p := NewParser()

	out := p.preprocessOFX("\n\n  <SEVERITY>Info</SEVERITY>\n<BANKTRANLIST\n")

	assert.True(t, strings.HasPrefix(out, "<SEVERITY>INFO</SEVERITY>"))
	assert.Contains(t, out, "<BANKTRANLIST>")
}

func TestExtractMerchantName(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name     string
		input    ofxgo.Transaction
		expected string
	}{
		{
			name:     "remove POS prefix",
			input:    ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"},
			expected: "STARBUCKS",
		},
		{
			name:     "remove DEBIT CARD prefix",
			input:    ofxgo.Transaction{Name: "DEBIT CARD PURCHASE TARGET"},
			expected: "TARGET",
		},
		{
			name:     "drop posting date",
			input:    ofxgo.Transaction{Name: "01/15 SHELL OIL"},
			expected: "SHELL OIL",
		},
		{
			name:     "keep non-date slash prefix",
			input:    ofxgo.Transaction{Name: "AB/CD MARKET"},
			expected: "AB/CD MARKET",
		},
		{
			name:     "prefer payee",
			input:    ofxgo.Transaction{Name: "SQ *BLUE BOTTLE", Payee: &ofxgo.Payee{Name: "Blue Bottle Coffee"}},
			expected: "Blue Bottle Coffee",
		},
		{
			name:     "trim whitespace",
			input:    ofxgo.Transaction{Name: "  Amazon  "},
			expected: "Amazon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.extractMerchantName(tt.input))
		})
	}
}

func TestConvertTransaction_Amount(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name         string
		trnAmt       string
		expectedKind model.Kind
		expected     string
	}{
		{name: "three decimal debit", trnAmt: "-12.345", expectedKind: model.KindExpense, expected: "12.345"},
		{name: "sub-cent debit", trnAmt: "-0.004", expectedKind: model.KindExpense, expected: "0.004"},
		{name: "credit", trnAmt: "1000.00", expectedKind: model.KindIncome, expected: "1000"},
		{name: "zero", trnAmt: "0.00", expectedKind: model.KindIncome, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var amt ofxgo.Amount
			_, ok := amt.SetString(tt.trnAmt)
			require.True(t, ok)

			tx := p.convertTransaction(ofxgo.Transaction{
				TrnType:  ofxgo.TrnTypeDebit,
				TrnAmt:   amt,
				DtPosted: ofxgo.Date{Time: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
				Name:     "CORNER SHOP",
			})

			assert.Equal(t, tt.expectedKind, tx.Kind())
			assert.Equal(t, tt.expected, tx.Amount().String())
			assert.Equal(t, "05-03-2024", tx.Date())
		})
	}
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, "Interest", categoryFor("INT"))
	assert.Equal(t, "Dividends", categoryFor("DIV"))
	assert.Equal(t, "Bank Fees", categoryFor("SRVCHG"))
	assert.Equal(t, Uncategorized, categoryFor("POS"))
}

func TestImport(t *testing.T) {
	acc := ledger.New()

	result, err := Import(context.Background(), NewParser(), acc, strings.NewReader(sampleBankOFX))

	require.NoError(t, err)
	assert.Equal(t, Result{Added: 3, Skipped: 1}, result)
	assert.Equal(t, "3 added, 1 skipped", result.String())
	assert.Equal(t, "750", acc.Balance().String())

	monthly := report.NewGenerator().Monthly(acc, "01-2024")
	assert.Equal(t, "800", monthly.Net.String())
	assert.Equal(t, "200", monthly.ByCategoryExpense[Uncategorized].String())
}

func TestImport_ParseError(t *testing.T) {
	acc := ledger.New()

	_, err := Import(context.Background(), NewParser(), acc, strings.NewReader("garbage"))

	require.Error(t, err)
	assert.Equal(t, 0, acc.Len())
}
