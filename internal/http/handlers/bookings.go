package handlers

import (
	"net/http"
	"strconv"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newBookingService(c *gin.Context) services.BookingService {
	reqID := middleware.GetRequestID(c)
	return services.BookingService{
		BookingRepo:  repositories.BookingRepository{},
		PaymentRepo:  repositories.PaymentRepository{},
		TripRepo:     repositories.TripRepository{},
		CustomerRepo: repositories.CustomerRepository{},
		LeadSvc:      services.LeadService{LeadRepo: repositories.LeadRepository{}, RequestID: reqID},
		RequestID:    reqID,
	}
}

type createBookingRequest struct {
	TripID           int64  `json:"trip_id"`
	CustomerID       int64  `json:"customer_id"`
	PassportID       *int64 `json:"passport_id"`
	SingleSupplement bool   `json:"single_supplement"`
	ExtraBed         bool   `json:"extra_bed"`
	ExtraSeat        bool   `json:"extra_seat"`
	ExtraBag         bool   `json:"extra_bag"`
	Discount         string `json:"discount"`
	DepositAmount    string `json:"deposit_amount"`
	AgentID          *int64 `json:"agent_id"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	discount := decimal.Zero
	if req.Discount != "" {
		var err error
		discount, err = utils.ParseAmount(req.Discount)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid discount", err)
			return
		}
	}
	deposit := decimal.Zero
	if req.DepositAmount != "" {
		var err error
		deposit, err = utils.ParseAmount(req.DepositAmount)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid deposit_amount", err)
			return
		}
	}

	svc := newBookingService(c)
	booking, err := svc.CreateBooking(services.CreateBookingInput{
		TripID:           req.TripID,
		CustomerID:       req.CustomerID,
		PassportID:       req.PassportID,
		SingleSupplement: req.SingleSupplement,
		ExtraBed:         req.ExtraBed,
		ExtraSeat:        req.ExtraSeat,
		ExtraBag:         req.ExtraBag,
		Discount:         discount,
		DepositAmount:    deposit,
		SalesUserID:      middleware.GetUserID(c),
		AgentID:          req.AgentID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings/:id returns the booking with its pricing breakdown
// and payment ledger.
func GetBooking(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	bRepo := repositories.BookingRepository{}
	booking, err := bRepo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pRepo := repositories.PaymentRepository{}
	payments, err := pRepo.ListByBooking(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	total := services.TotalPayable(booking)
	paid := decimal.Zero
	for _, p := range payments {
		if isLinkedPayment(booking, p.ID) {
			paid = paid.Add(p.Amount)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"booking": booking,
		"pricing": pricingBreakdown(booking, total),
		"ledger": gin.H{
			"payments":    payments,
			"paid_total":  utils.FormatMoney(paid),
			"outstanding": utils.FormatMoney(total.Sub(paid)),
		},
	})
}

func isLinkedPayment(b models.Booking, paymentID int64) bool {
	for _, slot := range []*int64{b.FirstPaymentID, b.SecondPaymentID, b.ThirdPaymentID} {
		if slot != nil && *slot == paymentID {
			return true
		}
	}
	return false
}

func pricingBreakdown(b models.Booking, total decimal.Decimal) gin.H {
	return gin.H{
		"base_price":              utils.FormatMoney(b.TripBasePrice),
		"single_supplement_price": utils.FormatMoney(b.SingleSupplementPrice),
		"extra_bed_price":         utils.FormatMoney(b.ExtraBedPrice),
		"seat_surcharge":          utils.FormatMoney(b.SeatSurcharge),
		"bag_surcharge":           utils.FormatMoney(b.BagSurcharge),
		"discount":                utils.FormatMoney(b.Discount),
		"total_payable":           utils.FormatMoney(total),
	}
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	var f domain.BookingFilter
	if v := c.Query("trip_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid trip_id", err)
			return
		}
		f.TripID = id
	}
	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			RespondError(c, http.StatusBadRequest, "invalid customer_id", err)
			return
		}
		f.CustomerID = id
	}
	f.PaymentStatus = c.Query("payment_status")

	repo := repositories.BookingRepository{}
	bookings, err := repo.List(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type updateBookingRequest struct {
	PassportID *int64  `json:"passport_id"`
	Discount   *string `json:"discount"`
	AgentID    *int64  `json:"agent_id"`
}

// PUT /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	var req updateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var u models.BookingUpdate
	u.PassportID = req.PassportID
	u.AgentID = req.AgentID
	if req.Discount != nil {
		d, err := utils.ParseAmount(*req.Discount)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid discount", err)
			return
		}
		u.Discount = &d
	}

	repo := repositories.BookingRepository{}
	if err := repo.Update(id, u); err != nil {
		RespondDomainError(c, err)
		return
	}
	booking, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// POST /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := IDParamOrError(c, "id")
	if !ok {
		return
	}

	svc := newBookingService(c)
	if err := svc.CancelBooking(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}
