package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	gofpdf "github.com/jung-kurt/gofpdf/v2"
	qrcode "github.com/skip2/go-qrcode"
)

const qrFolder = "qrcode"

type QrMember struct {
	ClientNumber int
	FullName     string
}

// MemberQr writes the QR code PNG for a client number and returns its path.
// The code encodes the bare number, which is what the check-in scanner sends.
func MemberQr(clientNumber int) (string, error) {
	targetPath := filepath.Join(baseDir, qrFolder)
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return "", err
		}
	}

	path := filepath.Join(targetPath, fmt.Sprintf("client_%d.png", clientNumber))
	if err := qrcode.WriteFile(strconv.Itoa(clientNumber), qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("writing qr code: %w", err)
	}

	return path, nil
}

// QrRoster renders one page per member with their name, number and QR code,
// for printing and handing out at the front desk.
func QrRoster(members []QrMember) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	for _, member := range members {
		imgPath, err := MemberQr(member.ClientNumber)
		if err != nil {
			return "", err
		}

		pdf.AddPage()
		pdf.SetFont("Arial", "B", 24)
		pdf.CellFormat(0, 20, member.FullName, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Client ID: %d", member.ClientNumber), "", 1, "C", false, 0, "")
		pdf.ImageOptions(imgPath, 65, 60, 80, 80, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	targetPath := filepath.Join(baseDir, qrFolder)
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return "", err
		}
	}

	path := filepath.Join(targetPath, "members_qr.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("writing qr roster: %w", err)
	}

	return path, nil
}
