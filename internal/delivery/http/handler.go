package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoiceagent/backend/internal/domain"
	"github.com/invoiceagent/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	matcher  *usecase.MatchingService
	catalogs domain.CatalogRepository
	aliases  domain.AliasRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(matcher *usecase.MatchingService, catalogs domain.CatalogRepository, aliases domain.AliasRepository) *Handler {
	return &Handler{
		matcher:  matcher,
		catalogs: catalogs,
		aliases:  aliases,
	}
}

// processInvoiceRequest is the POST /process-invoice payload. A product_db
// supplied inline takes precedence over the configured catalog file.
type processInvoiceRequest struct {
	InvoiceData domain.Invoice        `json:"invoice_data"`
	ProductDB   []domain.CatalogEntry `json:"product_db"`
	MatchMethod string                `json:"match_method"`
}

type updateAliasesRequest struct {
	CorrectedItems []domain.Correction `json:"corrected_items"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "invoice-agent-backend",
		"features":  []string{"basic_matching", "fuzzy_matching", "alias_learning"},
	})
}

// ProcessInvoice matches an extracted invoice against the product catalog
func (h *Handler) ProcessInvoice(c *gin.Context) {
	start := time.Now()

	var req processInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	method := domain.MatchMethodBasic
	if req.MatchMethod == string(domain.MatchMethodFuzzy) {
		method = domain.MatchMethodFuzzy
	}

	catalog := &domain.CatalogSnapshot{Entries: req.ProductDB}
	if len(req.ProductDB) == 0 {
		snapshot, err := h.catalogs.Snapshot(c.Request.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrCatalogUnavailable) {
				status = http.StatusServiceUnavailable
			}
			failure(c, status, err)
			return
		}
		catalog = snapshot
	}

	aliases, err := h.aliases.Snapshot(c.Request.Context())
	if err != nil {
		failure(c, http.StatusInternalServerError, err)
		return
	}

	processed, stats, err := h.matcher.ProcessInvoice(c.Request.Context(), &req.InvoiceData, catalog, aliases, method)
	if err != nil {
		failure(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"timestamp":        time.Now().Format(time.RFC3339),
		"processing_time":  time.Since(start).Seconds(),
		"processing_stats": stats,
		"processed_data":   processed,
	})
}

// UpdateAliases records human corrections into the alias store
func (h *Handler) UpdateAliases(c *gin.Context) {
	var req updateAliasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, err)
		return
	}

	count, err := h.aliases.Update(c.Request.Context(), req.CorrectedItems)
	if err != nil {
		failure(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"updated_count": count,
	})
}

// failure writes the structured error payload shared by all endpoints
func failure(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"success":   false,
		"error":     err.Error(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
