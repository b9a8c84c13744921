package handlers

import (
	"net/http"

	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

func newDocsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		PaymentRepo:  repositories.PaymentRepository{},
		BookingRepo:  repositories.BookingRepository{},
		CustomerRepo: repositories.CustomerRepository{},
		TripRepo:     repositories.TripRepository{},
		UserRepo:     repositories.UserRepository{},
		ReportsSvc:   newReportsService(c),
		RequestID:    middleware.GetRequestID(c),
	}
}

// GET /api/payments/:id/receipt returns the payment receipt PDF (inline).
func GetPaymentReceiptPDF(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	svc := newDocsService(c)
	pdfBytes, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/reports/commissions/:agent_id/statement returns the agent's
// commission statement PDF (inline).
func GetCommissionStatementPDF(c *gin.Context) {
	agentID, ok := IDParamOrError(c, "agent_id")
	if !ok {
		return
	}

	svc := newDocsService(c)
	pdfBytes, filename, err := svc.GenerateCommissionStatement(agentID, commissionFilterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
