// Package pdfgen renders course registration slips as PDF documents.
package pdfgen

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/oseghale/unireg/internal/app/models"
)

// RegistrationSlip renders a printable slip for a registration. Only active
// items are listed.
func RegistrationSlip(registration *models.CourseRegistration) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Course Registration", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Registration ID: %d", registration.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Student ID: %d", registration.StudentID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Academic year ID: %d", registration.AcademicYearID), "", 1, "L", false, 0, "")

	submitted := "No"
	if registration.Submitted && registration.SubmittedAt != nil {
		submitted = registration.SubmittedAt.Format("2006-01-02 15:04")
	}
	pdf.CellFormat(0, 8, "Submitted: "+submitted, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 10, "Courses", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	active := registration.ActiveItems()
	if len(active) == 0 {
		pdf.CellFormat(0, 8, "No courses in this registration", "", 1, "L", false, 0, "")
	} else {
		for i, item := range active {
			line := fmt.Sprintf("%d. %s - %s", i+1, item.CourseCodeSnapshot, item.CourseNameSnapshot)
			pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render registration pdf: %w", err)
	}
	return buf.Bytes(), nil
}
