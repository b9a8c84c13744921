package handlers

import (
	"net/http"

	"tourops/internal/domain"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// reportsCache is the shared redis client for the commission report cache.
// Nil means the cache is disabled and reports hit the database every time.
var reportsCache *redis.Client

// SetReportsCache installs the redis client used by report handlers.
func SetReportsCache(client *redis.Client) {
	reportsCache = client
}

func newReportsService(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		CommissionRepo: repositories.CommissionRepository{},
		Cache:          reportsCache,
		RequestID:      middleware.GetRequestID(c),
	}
}

func newPaymentService(c *gin.Context) services.PaymentService {
	reqID := middleware.GetRequestID(c)
	reports := newReportsService(c)
	return services.PaymentService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		CommissionSvc: services.CommissionService{
			CommissionRepo: repositories.CommissionRepository{},
			BookingRepo:    repositories.BookingRepository{},
			UserRepo:       repositories.UserRepository{},
			ReportsSvc:     &reports,
			RequestID:      reqID,
		},
		RequestID: reqID,
	}
}

type recordPaymentRequest struct {
	Kind      string `json:"kind"`
	Amount    string `json:"amount"`
	ProofFile string `json:"proof_file"`
}

// POST /api/bookings/:id/payments
func RecordPayment(c *gin.Context) {
	bookingID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	var req recordPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	kind, ok := domain.ParsePaymentKind(req.Kind)
	if !ok {
		RespondError(c, http.StatusBadRequest, "kind must be second or third", nil)
		return
	}
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid amount", err)
		return
	}

	svc := newPaymentService(c)
	payment, err := svc.RecordPayment(services.RecordPaymentInput{
		BookingID: bookingID,
		Kind:      kind,
		Amount:    amount,
		ProofFile: req.ProofFile,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GET /api/bookings/:id/payments
func ListBookingPayments(c *gin.Context) {
	bookingID, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	repo := repositories.PaymentRepository{}
	payments, err := repo.ListByBooking(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// GET /api/payments/:id
func GetPayment(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	repo := repositories.PaymentRepository{}
	payment, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
