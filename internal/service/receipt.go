package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gofpdf "github.com/jung-kurt/gofpdf/v2"
)

const receiptFolder = "receipts"

type ReceiptData struct {
	GymName       string
	Currency      string
	ClientNumber  int
	ClientName    string
	Membership    string
	JoiningDate   string
	ExpiryDate    string
	MembershipFee float64
	Discount      float64
	PaidAmount    float64
	PaymentDate   string
	PaymentMode   string
	TransactionID string
}

// BuildReceipt renders a payment receipt PDF and returns its path. Total due
// is fee minus discount; the balance line shows what remains unpaid.
func BuildReceipt(data ReceiptData) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 14, data.GymName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(60, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	money := func(amount float64) string {
		return fmt.Sprintf("%s %.2f", data.Currency, amount)
	}

	line("Receipt Date", time.Now().Format("2006-01-02"))
	line("Client ID", fmt.Sprintf("%d", data.ClientNumber))
	line("Client Name", data.ClientName)
	if data.Membership != "" {
		line("Membership", data.Membership)
	}
	if data.JoiningDate != "" {
		line("Joining Date", data.JoiningDate)
	}
	if data.ExpiryDate != "" {
		line("Expiry Date", data.ExpiryDate)
	}
	pdf.Ln(4)

	total := data.MembershipFee - data.Discount
	balance := total - data.PaidAmount

	line("Membership Fee", money(data.MembershipFee))
	if data.Discount > 0 {
		line("Discount", money(data.Discount))
	}
	line("Total", money(total))
	line("Paid", money(data.PaidAmount))
	line("Balance", money(balance))
	pdf.Ln(4)

	if data.PaymentDate != "" {
		line("Payment Date", data.PaymentDate)
	}
	if data.PaymentMode != "" {
		line("Payment Mode", data.PaymentMode)
	}
	if data.TransactionID != "" {
		line("Transaction ID", data.TransactionID)
	}

	targetPath := filepath.Join(baseDir, receiptFolder)
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return "", err
		}
	}

	path := filepath.Join(targetPath, fmt.Sprintf("receipt_%d_%s.pdf", data.ClientNumber, time.Now().Format("20060102T150405")))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}

	return path, nil
}
