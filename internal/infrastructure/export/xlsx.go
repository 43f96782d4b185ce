// Package export renders stored records into spreadsheet form for the admin
// surface.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/akozyrev/resume-insight/internal/core/domain"
)

const sheetName = "Resumes"

var columns = []string{
	"ID", "Owner", "File", "MIME Type", "Size (bytes)", "Status",
	"Match %", "Processing (ms)", "Error", "Created At", "Updated At",
}

// WriteResumesXLSX streams an XLSX workbook with one row per record. The
// extracted text is deliberately not exported.
func WriteResumesXLSX(w io.Writer, resumes []domain.Resume) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, resume := range resumes {
		values := rowValues(resume)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func rowValues(resume domain.Resume) []any {
	var matchPercentage any
	if resume.Analysis != nil {
		matchPercentage = resume.Analysis.SkillMatch.MatchPercentage
	}
	var errMessage string
	if resume.Error != nil {
		errMessage = fmt.Sprintf("%s: %s", resume.Error.Code, resume.Error.Message)
	}
	return []any{
		resume.ID,
		resume.OwnerID,
		resume.OriginalName,
		resume.MimeType,
		resume.FileSize,
		string(resume.Status),
		matchPercentage,
		resume.ProcessingMs,
		errMessage,
		resume.CreatedAt.Format("2006-01-02 15:04:05"),
		resume.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
