package analysishandler

import (
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"

	"skillhub/internal/transport/http/middleware"
)

// handleOrganizationExport renders the organization analysis as a PDF for
// offline reporting.
func (h *Handler) handleOrganizationExport(w http.ResponseWriter, r *http.Request) {
	capability := r.URL.Query().Get("capability")
	result, err := h.Service.OrganizationAnalysis(r.Context(), capability)
	if err != nil {
		h.fail(w, r, "organization export failed", err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Skill Analysis Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Capability: %s", result.Capability))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d", result.EmployeeCount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", result.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Top Skills")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	for _, skill := range result.TopSkills {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %.1f%%", skill.Skill, skill.Value))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Top Skill Gaps")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
	for _, gap := range result.TopGaps {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %.2f", gap.Skill, gap.Value))
		pdf.Ln(6)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "skill-analysis-"+result.Capability+".pdf"))
	if err := pdf.Output(w); err != nil {
		h.Log.Error("pdf output failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
	}
}
