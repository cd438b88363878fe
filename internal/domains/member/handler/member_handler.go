package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"biblioteca-console/internal/domains/member"
	"biblioteca-console/internal/shared/response"
	"biblioteca-console/internal/workflow"
	"biblioteca-console/pkg/logger"
)

// MemberHandler is the members page controller. Creation and deletion go
// through the workflow coordinator (number allocation, active-loan
// pre-check); reads hit the service directly.
type MemberHandler struct {
	service  member.Service
	workflow *workflow.Coordinator
}

func NewMemberHandler(service member.Service, wf *workflow.Coordinator) *MemberHandler {
	return &MemberHandler{service: service, workflow: wf}
}

// List handles GET /socios?busqueda=
// busqueda matches name, DNI or member number over the fresh collection.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("load members", err)
		response.HandleError(c, err)
		return
	}

	if busqueda := strings.TrimSpace(c.Query("busqueda")); busqueda != "" {
		members = filterMembers(members, busqueda)
	}

	response.Success(c, http.StatusOK, member.NewListResp(members))
}

// Get handles GET /socios/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// ByDNI handles GET /socios/dni/:dni
func (h *MemberHandler) ByDNI(c *gin.Context) {
	dni := member.SanitizeDNI(c.Param("dni"))
	if dni == "" {
		response.BadRequest(c, "DNI inválido")
		return
	}

	m, err := h.service.ByDNI(c.Request.Context(), dni)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// ByNumber handles GET /socios/numero/:numero
func (h *MemberHandler) ByNumber(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("numero"), 10, 64)
	if err != nil {
		response.BadRequest(c, "número de socio inválido")
		return
	}

	m, err := h.service.ByNumber(c.Request.Context(), number)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// Search handles GET /socios/buscar?nombre= (backend-side name search).
func (h *MemberHandler) Search(c *gin.Context) {
	nombre := strings.TrimSpace(c.Query("nombre"))
	if nombre == "" {
		response.BadRequest(c, "el parámetro nombre es obligatorio")
		return
	}

	members, err := h.service.SearchByName(c.Request.Context(), nombre)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, member.NewListResp(members))
}

// HasActiveLoans handles GET /socios/:id/prestamos-activos
func (h *MemberHandler) HasActiveLoans(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hasLoans, err := h.service.HasActiveLoans(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tienePrestamosActivos": hasLoans})
}

// Create handles POST /socios. The member number is allocated server-side;
// the form only carries name and DNI.
func (h *MemberHandler) Create(c *gin.Context) {
	var req member.SaveMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	result, err := h.workflow.RegisterMember(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Update handles PUT /socios/:id (name and DNI only, the number is fixed).
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req member.SaveMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "cuerpo de la petición inválido")
		return
	}

	result, err := h.workflow.UpdateMember(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /socios/:id. Blocked with 409 when the member still
// has active loans.
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	members, err := h.workflow.DeleteMember(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, member.ErrHasActiveLoans) {
			response.Conflict(c, err.Error())
			return
		}
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, member.NewListResp(members))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "identificador inválido")
		return 0, false
	}
	return id, true
}

func filterMembers(members []member.Member, term string) []member.Member {
	term = strings.ToLower(term)
	out := make([]member.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), term) ||
			strings.Contains(m.DNI, term) ||
			strings.Contains(strconv.FormatInt(m.Number, 10), term) {
			out = append(out, m)
		}
	}
	return out
}
