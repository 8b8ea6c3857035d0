package utils

import (
	"fmt"

	"collabhub/internal/models"

	"github.com/xuri/excelize/v2"
)

// CreateUsersReport writes the admin user table to an xlsx file.
func CreateUsersReport(path string, profiles []models.Profile) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}

	headers := []string{"Full Name", "Role", "Organization", "Contact Email", "Verified", "Joined"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, profile := range profiles {
		rowNum := rowIdx + 2

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), derefOr(profile.FullName, "(no name)"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), derefOr(profile.Role, "unset"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), derefOr(profile.Organization, ""))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), derefOr(profile.ContactEmail, ""))
		if profile.IsVerified {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), "yes")
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), "no")
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum),
			profile.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	for i := 1; i <= len(headers); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheet, colName, colName, 24)
	}

	// Green fill for verified accounts
	verifiedRule := []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: "==",
			Value:    "\"yes\"",
			Format:   getConditionalFormatStyle(f, "#CCFFCC"),
		},
	}
	if err := f.SetConditionalFormat(sheet, fmt.Sprintf("E2:E%d", len(profiles)+1), verifiedRule); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(path)
}

func getConditionalFormatStyle(f *excelize.File, color string) *int {
	style, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
