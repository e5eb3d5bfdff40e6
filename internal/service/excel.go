package service

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

type ClientRow struct {
	ClientNumber int
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Membership   string
	JoiningDate  string
	ExpiryDate   string
}

// AddClientsToExcel appends the roster to an xlsx file, creating it with a
// header row when it does not exist yet.
func AddClientsToExcel(clients []ClientRow, fileName string) error {
	var f *excelize.File
	sheet := "Sheet1"

	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		f = excelize.NewFile()
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Client ID", "First Name", "Last Name", "Phone", "Email", "Membership", "Joining Date", "Expiry Date"}
		for i, header := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(sheet, cell, header)
		}
	} else {
		f, err = excelize.OpenFile(fileName)
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
	}

	// Find the next empty row
	rowNum := 2
	for {
		cell, _ := f.GetCellValue(sheet, fmt.Sprintf("A%d", rowNum))
		if cell == "" {
			break
		}
		rowNum++
	}

	for _, entry := range clients {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.ClientNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.FirstName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.LastName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.Email)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.Membership)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), entry.JoiningDate)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), entry.ExpiryDate)
		rowNum++
	}

	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}

	return nil
}
