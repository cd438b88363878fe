package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/domains/loan"
	"biblioteca-console/internal/domains/member"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/internal/workflow"
	"biblioteca-console/pkg/logger"
)

// LoanHandler is the loans page controller: the active table, the history
// view, the creation form with quick-pick due dates and the graded return
// dialog. Mutations run through the workflow coordinator.
type LoanHandler struct {
	service  loan.Service
	books    book.Service
	members  member.Service
	workflow *workflow.Coordinator
}

func NewLoanHandler(service loan.Service, books book.Service, members member.Service, wf *workflow.Coordinator) *LoanHandler {
	return &LoanHandler{service: service, books: books, members: members, workflow: wf}
}

// List handles GET /prestamos?activos=&busqueda=
// activos=true keeps open loans, activos=false the closed ones; busqueda
// matches the member's name over the fresh collection.
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("load loans", err)
		response.HandleError(c, err)
		return
	}

	if activos := strings.TrimSpace(c.Query("activos")); activos != "" {
		wantActive, err := strconv.ParseBool(activos)
		if err != nil {
			response.BadRequest(c, "el parámetro activos debe ser true o false")
			return
		}
		filtered := loans[:0]
		for _, l := range loans {
			if l.Active == wantActive {
				filtered = append(filtered, l)
			}
		}
		loans = filtered
	}

	if busqueda := strings.TrimSpace(c.Query("busqueda")); busqueda != "" {
		loans = filterByMemberName(loans, busqueda)
	}

	response.Success(c, http.StatusOK, loan.NewListResp(loans))
}

// Get handles GET /prestamos/:id
func (h *LoanHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, l)
}

// Active handles GET /prestamos/activos
func (h *LoanHandler) Active(c *gin.Context) {
	loans, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, loan.NewListResp(loans))
}

// Overdue handles GET /prestamos/retraso
func (h *LoanHandler) Overdue(c *gin.Context) {
	loans, err := h.service.Overdue(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, loan.NewListResp(loans))
}

// ActiveByMember handles GET /prestamos/socio/:id/activos
func (h *LoanHandler) ActiveByMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	loans, err := h.service.ActiveByMember(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, loan.NewListResp(loans))
}

// FormData handles GET /prestamos/formulario: available books for the book
// picker plus the member list. Each side load degrades to an empty list on
// failure so the form still opens.
func (h *LoanHandler) FormData(c *gin.Context) {
	ctx := c.Request.Context()

	books, err := h.books.Available(ctx)
	if err != nil {
		logger.Warn("loan form: available books load failed, degrading to empty list", err)
		books = nil
	}

	members, err := h.members.List(ctx)
	if err != nil {
		logger.Warn("loan form: members load failed, degrading to empty list", err)
		members = nil
	}

	response.Success(c, http.StatusOK, loan.NewFormDataResp(books, members))
}

// Grades handles GET /prestamos/estados-devolucion: the return dialog's
// grade options with their labels and fine-policy hints.
func (h *LoanHandler) Grades(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"estados": loan.Grades})
}

// DueDate handles GET /prestamos/calcular-fecha?inicio=&dias= and computes
// a quick-pick end date (7, 15 or 30 days after the start).
func (h *LoanHandler) DueDate(c *gin.Context) {
	inicio := strings.TrimSpace(c.Query("inicio"))
	dias, err := strconv.Atoi(c.Query("dias"))
	if err != nil {
		response.BadRequest(c, "el parámetro dias debe ser numérico")
		return
	}

	fechaFin, err := workflow.EndDateAfter(inicio, dias)
	if err != nil {
		response.BadRequest(c, "fecha o plazo inválido")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"fechaFin": fechaFin})
}

// Create handles POST /prestamos. The start date defaults to today and the
// books collection comes back refreshed so the borrowed copy shows as
// PRESTADO.
func (h *LoanHandler) Create(c *gin.Context) {
	var req loan.CreateLoanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	result, err := h.workflow.CreateLoan(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Return handles PUT /prestamos/:id/devolucion (the graded return dialog).
func (h *LoanHandler) Return(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req loan.ReturnLoanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	result, err := h.workflow.ReturnLoan(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Renew handles PUT /prestamos/:id/renovar
func (h *LoanHandler) Renew(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req loan.RenewLoanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	result, err := h.workflow.RenewLoan(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return 0, false
	}
	return id, true
}

func filterByMemberName(loans []loan.Loan, term string) []loan.Loan {
	term = strings.ToLower(term)
	out := make([]loan.Loan, 0, len(loans))
	for _, l := range loans {
		if l.Member != nil && strings.Contains(strings.ToLower(l.Member.Name), term) {
			out = append(out, l)
		}
	}
	return out
}
