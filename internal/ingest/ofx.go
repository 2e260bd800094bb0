package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/soltixdb/finsight/internal/models"
)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	unclosedTag     = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// normalizeOFX fixes formatting slips that some banks emit and ofxgo rejects.
func normalizeOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return unclosedTag.ReplaceAllString(content, "$1>")
}

// ReadOFX reads bank and credit card statement transactions from an OFX or
// QFX document. Debits become expenses and credits income; the category is
// the lowercased OFX transaction type.
func ReadOFX(r io.Reader) ([]models.TransactionRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(normalizeOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX: %w", err)
	}

	txns := []models.TransactionRecord{}
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, t := range stmt.BankTranList.Transactions {
				txns = append(txns, convertOFX(t))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, t := range stmt.BankTranList.Transactions {
				txns = append(txns, convertOFX(t))
			}
		}
	}
	return txns, nil
}

func convertOFX(t ofxgo.Transaction) models.TransactionRecord {
	amount, _ := t.TrnAmt.Float64()

	kind := models.KindIncome
	if amount < 0 {
		kind = models.KindExpense
	}

	category := uncategorized
	if t.TrnType.Valid() {
		category = strings.ToLower(t.TrnType.String())
	}

	return models.TransactionRecord{
		ID:          string(t.FiTID),
		Amount:      decimal.NewFromFloat(amount).Abs().InexactFloat64(),
		Category:    category,
		Date:        t.DtPosted.Time,
		Description: ofxDescription(t),
		Kind:        kind,
	}
}

// ofxDescription prefers the payee, then NAME, then MEMO.
func ofxDescription(t ofxgo.Transaction) string {
	if t.Payee != nil && t.Payee.Name != "" {
		return strings.TrimSpace(string(t.Payee.Name))
	}
	if name := strings.TrimSpace(string(t.Name)); name != "" {
		return name
	}
	return strings.TrimSpace(string(t.Memo))
}
