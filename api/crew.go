package api

import (
	"net/http"

	"github.com/Domenick1991/airportservice/internal/domain"
	"github.com/Domenick1991/airportservice/internal/service/crew"
	"github.com/gin-gonic/gin"
)

type crewRequest struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CrewHandler struct {
	service crew.CrewUseCase
}

func NewCrewHandler(service crew.CrewUseCase) *CrewHandler {
	return &CrewHandler{service: service}
}

func (h *CrewHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *CrewHandler) list(c *gin.Context) {
	p, ok := parsePage(c)
	if !ok {
		return
	}
	members, total, err := h.service.List(c.Request.Context(), p.window())
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]crewResponse, 0, len(members))
	for _, m := range members {
		results = append(results, newCrewResponse(m))
	}
	respondPage(c, p, total, results)
}

func (h *CrewHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	member, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCrewResponse(*member))
}

func (h *CrewHandler) create(c *gin.Context) {
	var req crewRequest
	if !bindJSON(c, &req) {
		return
	}
	member := &domain.Crew{FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.Create(c.Request.Context(), member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCrewResponse(*member))
}

func (h *CrewHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req crewRequest
	if c.Request.Method == http.MethodPatch {
		current, err := h.service.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		req = crewRequest{FirstName: current.FirstName, LastName: current.LastName}
	}
	if !bindJSON(c, &req) {
		return
	}

	member := &domain.Crew{ID: id, FirstName: req.FirstName, LastName: req.LastName}
	if err := h.service.Update(c.Request.Context(), member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCrewResponse(*member))
}

func (h *CrewHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func newCrewResponse(m domain.Crew) crewResponse {
	return crewResponse{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName}
}
