package handlers

import (
	"net/http"
	"strconv"

	"tourops/internal/domain"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

func newExportService(c *gin.Context) services.ExportService {
	return services.ExportService{
		BookingRepo: repositories.BookingRepository{},
		ReportsSvc:  newReportsService(c),
		RequestID:   middleware.GetRequestID(c),
	}
}

// GET /api/exports/bookings
func ExportBookingsCSV(c *gin.Context) {
	var f domain.BookingFilter
	if v := c.Query("trip_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid trip_id", err)
			return
		}
		f.TripID = id
	}
	f.PaymentStatus = c.Query("payment_status")

	svc := newExportService(c)
	data, filename, err := svc.ExportBookingsCSV(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// GET /api/exports/commissions
func ExportCommissionsCSV(c *gin.Context) {
	svc := newExportService(c)
	data, filename, err := svc.ExportCommissionSummaryCSV(commissionFilterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
