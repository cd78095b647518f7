package handler

import (
	"net/http"

	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (h *ReportHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportUsecase.DashboardSummary(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard summary")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard summary retrieved successfully", summary)
}

// Revenue handles GET /reports/revenue?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	report, err := h.reportUsecase.Revenue(r.Context(), query.Get("start"), query.Get("end"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to build revenue report")
		}
		return
	}

	response.Success(w, http.StatusOK, "Revenue report retrieved successfully", report)
}
