package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/domains/fine"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/internal/workflow"
	"biblioteca-console/pkg/logger"
)

// FineHandler is the fines page controller: the pending/paid table, the
// issuance form with derived suggestions, payment and the per-member
// pending summaries. Mutations run through the workflow coordinator.
type FineHandler struct {
	service  fine.Service
	workflow *workflow.Coordinator
}

func NewFineHandler(service fine.Service, wf *workflow.Coordinator) *FineHandler {
	return &FineHandler{service: service, workflow: wf}
}

// List handles GET /multas?activas=
// activas=true keeps pending fines, activas=false the settled ones.
func (h *FineHandler) List(c *gin.Context) {
	fines, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("load fines", err)
		response.HandleError(c, err)
		return
	}

	if activas := strings.TrimSpace(c.Query("activas")); activas != "" {
		wantActive, err := strconv.ParseBool(activas)
		if err != nil {
			response.BadRequest(c, "el parámetro activas debe ser true o false")
			return
		}
		filtered := fines[:0]
		for _, f := range fines {
			if f.Active == wantActive {
				filtered = append(filtered, f)
			}
		}
		fines = filtered
	}

	response.Success(c, http.StatusOK, fine.NewListResp(fines))
}

// Get handles GET /multas/:id
func (h *FineHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	f, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, f)
}

// Active handles GET /multas/activas
func (h *FineHandler) Active(c *gin.Context) {
	fines, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fine.NewListResp(fines))
}

// ActiveByMember handles GET /multas/socio/:id/activas
func (h *FineHandler) ActiveByMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fines, err := h.service.ActiveByMember(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fine.NewListResp(fines))
}

// Suggestions handles GET /multas/sugerencias/:id: the issuance form's
// derived late-return proposals for a member, plus the member's active
// loans for the loan picker.
func (h *FineHandler) Suggestions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	suggestions, activeLoans, err := h.workflow.SuggestFines(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"sugerencias":      suggestions,
		"prestamosActivos": activeLoans,
	})
}

// Reasons handles GET /multas/motivos: the issuance form's reason options.
func (h *FineHandler) Reasons(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"motivos": fine.Reasons})
}

// Create handles POST /multas with the form's ordered validation.
func (h *FineHandler) Create(c *gin.Context) {
	var req fine.CreateFineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	result, err := h.workflow.CreateFine(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Generate handles POST /multas/prestamo/:id/generar (backend-derived fine
// for an overdue loan).
func (h *FineHandler) Generate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.workflow.GenerateFine(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Pay handles PUT /multas/:id/pagar. Full amount, irreversible.
func (h *FineHandler) Pay(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.workflow.PayFine(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// PendingTotal handles GET /multas/socio/:id/total-pendiente
func (h *FineHandler) PendingTotal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	total, err := h.service.PendingTotal(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalPendiente": total})
}

// HasPending handles GET /multas/socio/:id/tiene-pendientes
func (h *FineHandler) HasPending(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pending, err := h.service.HasPending(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tienePendientes": pending})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return 0, false
	}
	return id, true
}
