package handlers

import (
	"net/http"

	"tourops/internal/domain"

	"github.com/gin-gonic/gin"
)

func commissionFilterFromQuery(c *gin.Context) domain.CommissionFilter {
	return domain.CommissionFilter{
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		NameSearch: c.Query("name"),
	}
}

// GET /api/reports/commissions
func CommissionSummary(c *gin.Context) {
	svc := newReportsService(c)
	summaries, err := svc.SummarizeByAgent(commissionFilterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": summaries})
}

// GET /api/reports/commissions/:agent_id
func CommissionDetail(c *gin.Context) {
	agentID, ok := IDParamOrError(c, "agent_id")
	if !ok {
		return
	}

	svc := newReportsService(c)
	details, err := svc.DetailForAgent(agentID, commissionFilterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commissions": details})
}
