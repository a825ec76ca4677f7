package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleet-rental/internal/auth"
	"fleet-rental/internal/domain"
	"fleet-rental/internal/repository"
	"fleet-rental/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	people  service.PersonService
	rentals service.RentalService
	tokens  *auth.TokenService
	logger  *logrus.Logger
}

func NewHandler(people service.PersonService, rentals service.RentalService, tokens *auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		people:  people,
		rentals: rentals,
		tokens:  tokens,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
		api.POST("/people/register", h.register)
		api.POST("/people/login", h.login)

		protected := api.Group("", h.authRequired())
		{
			protected.GET("/people", h.listPeople)
			protected.GET("/people/:id", h.getPerson)
			protected.GET("/vehicles", h.listVehicles)
			protected.GET("/vehicles/:id", h.getVehicle)
			protected.POST("/vehicles", h.createVehicle)
			protected.PUT("/vehicles/:id", h.updateVehicle)
			protected.DELETE("/vehicles/:id", h.deleteVehicle)
			protected.POST("/vehicles/:id/rent", h.rentVehicle)
			protected.POST("/vehicles/:id/return", h.returnVehicle)
		}
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type vehicleRequest struct {
	Brand string `json:"brand" binding:"required"`
	Model string `json:"model" binding:"required"`
	Year  int    `json:"year" binding:"required"`
}

type PersonResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type VehicleResponse struct {
	ID           int64   `json:"id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Availability string  `json:"availability"`
	RentedBy     *string `json:"rented_by"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	person, err := h.people.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPersonExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "person registered",
		"person":  personToResponse(person),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	person, err := h.people.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			return
		}
		h.serviceError(c, err)
		return
	}

	token, err := h.tokens.Issue(person.Email)
	if err != nil {
		h.logger.Warnf("issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) listPeople(c *gin.Context) {
	people, err := h.people.List(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]PersonResponse, len(people))
	for i := range people {
		resp[i] = personToResponse(&people[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPerson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	person, err := h.people.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
			return
		}
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, personToResponse(person))
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.rentals.ListVehicles(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		resp[i] = vehicleToResponse(vehicles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	vehicle, err := h.rentals.GetVehicle(c.Request.Context(), id)
	if err != nil {
		h.vehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicleToResponse(*vehicle))
}

func (h *Handler) createVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand, model and year are required"})
		return
	}

	vehicle, err := h.rentals.CreateVehicle(c.Request.Context(), req.Brand, req.Model, req.Year)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vehicleToResponse(*vehicle))
}

func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand, model and year are required"})
		return
	}

	vehicle, err := h.rentals.UpdateVehicle(c.Request.Context(), id, req.Brand, req.Model, req.Year)
	if err != nil {
		h.vehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicleToResponse(*vehicle))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.rentals.DeleteVehicle(c.Request.Context(), id); err != nil {
		h.vehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) rentVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	renter, ok := subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	vehicle, err := h.rentals.Rent(c.Request.Context(), id, renter)
	if err != nil {
		h.vehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "vehicle rented",
		"vehicle": vehicleToResponse(*vehicle),
	})
}

func (h *Handler) returnVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	renter, ok := subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
		return
	}

	vehicle, err := h.rentals.Return(c.Request.Context(), id, renter)
	if err != nil {
		h.vehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "vehicle returned",
		"vehicle": vehicleToResponse(*vehicle),
	})
}

// vehicleError maps rental lifecycle failures to statuses; anything else
// falls through to serviceError.
func (h *Handler) vehicleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
	case errors.Is(err, service.ErrVehicleUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "vehicle already rented"})
	case errors.Is(err, service.ErrNotRenter):
		c.JSON(http.StatusForbidden, gin.H{"error": "vehicle not rented by you"})
	case errors.Is(err, service.ErrVehicleRented):
		c.JSON(http.StatusConflict, gin.H{"error": "vehicle is currently rented"})
	default:
		h.serviceError(c, err)
	}
}

// serviceError hides store internals behind a retryable server error;
// validation failures surface as bad requests.
func (h *Handler) serviceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Warnf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func personToResponse(person *domain.Person) PersonResponse {
	return PersonResponse{
		ID:        person.ID,
		Name:      person.Name,
		Email:     person.Email,
		CreatedAt: person.CreatedAt.Format(time.RFC3339),
	}
}

func vehicleToResponse(vehicle domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           vehicle.ID,
		Brand:        vehicle.Brand,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		Availability: string(vehicle.Availability),
		RentedBy:     vehicle.RentedBy,
		CreatedAt:    vehicle.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    vehicle.UpdatedAt.Format(time.RFC3339),
	}
}
