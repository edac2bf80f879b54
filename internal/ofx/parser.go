// Package ofx parses OFX/QFX bank and credit card statements into
// transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/centavo-dev/centavo/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
var danglingTagRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)

// preprocess fixes formatting quirks banks ship in SGML-style OFX exports:
// leading whitespace before the header, mixed-case SEVERITY values, and
// opening tags missing their closing bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = danglingTagRegex.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses an OFX/QFX file and returns transactions attributed to
// accountID. Amounts keep the signs the statement carries; the owning
// account's type defines the convention.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader, accountID string) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.statementTransactions(stmt.BankTranList, accountID)...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.statementTransactions(stmt.BankTranList, accountID)...)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// statementTransactions converts one statement's transaction list.
func (p *Parser) statementTransactions(list *ofxgo.TransactionList, accountID string) []model.Transaction {
	if list == nil {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		transactions = append(transactions, p.convert(ofxTx, accountID))
	}
	return transactions
}

// convert maps an OFX transaction to our model.
func (p *Parser) convert(ofxTx ofxgo.Transaction, accountID string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	txn := model.Transaction{
		ID:        string(ofxTx.FiTID),
		Date:      ofxTx.DtPosted.Time,
		Name:      p.cleanName(ofxTx),
		Amount:    amount,
		AccountID: accountID,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}

// processorPrefixes are stripped from transaction names; they carry no
// merchant information and defeat substring matching against biller names.
var processorPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// cleanName extracts the most useful description from OFX data: the payee
// when present, otherwise the name field with processor noise removed.
func (p *Parser) cleanName(ofxTx ofxgo.Transaction) string {
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		return string(ofxTx.Payee.Name)
	}

	name := strings.TrimSpace(string(ofxTx.Name))
	if name == "" && ofxTx.Memo != "" {
		name = strings.TrimSpace(string(ofxTx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range processorPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(name)
}
