// Package ofx parses OFX/QFX bank statements into ledger entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aclindsa/ofxgo"

	"kakeibo/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns ledger entries. Statement
// lines with a zero amount (balance markers, informational rows) are skipped
// because the ledger schema requires a positive amount.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]model.Expense, error) {
	// Read and preprocess the content
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	// Parse OFX response
	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []model.Expense
	var bankStmts, ccStmts, skipped int

	// Process bank messages
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				entry, ok := p.convertTransaction(ofxTx)
				if !ok {
					skipped++
					continue
				}
				entries = append(entries, entry)
			}
		}
	}

	// Process credit card messages
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				entry, ok := p.convertTransaction(ofxTx)
				if !ok {
					skipped++
					continue
				}
				entries = append(entries, entry)
			}
		}
	}

	slog.Info("Parsed OFX file",
		"total_entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts,
		"skipped", skipped)

	return entries, nil
}

// convertTransaction converts an OFX transaction to a ledger entry. The OFX
// sign convention (negative for debits) maps to the IsExpense flag; the
// stored amount is always positive. Returns false for zero-amount lines.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Expense, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()

	isExpense := amount < 0
	if isExpense {
		amount = -amount
	}
	if amount == 0 {
		return model.Expense{}, false
	}

	entry := model.Expense{
		Title:       truncateTitle(p.extractTitle(ofxTx)),
		Amount:      amount,
		IsExpense:   isExpense,
		Date:        ofxTx.DtPosted.Time,
		Description: strings.TrimSpace(string(ofxTx.Memo)),
	}

	return entry, true
}

// extractTitle tries to get a clean entry title from OFX data.
func (p *Parser) extractTitle(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if name != "" {
		return name
	}

	if memo := strings.TrimSpace(string(tx.Memo)); memo != "" {
		return memo
	}

	return "Imported entry"
}

// truncateTitle bounds a title to the store's display-character limit.
func truncateTitle(title string) string {
	const maxRunes = 20
	if utf8.RuneCountInString(title) <= maxRunes {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxRunes])
}
