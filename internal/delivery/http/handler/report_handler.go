package handler

import (
	"net/http"

	"library-lending/internal/usecase"
	"library-lending/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// Statistics handles the library statistics report
// @Summary Get library statistics
// @Description Total books, total readers, and circulation counts
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /reports/statistics [get]
func (h *ReportHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportUsecase.GetStatistics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}
