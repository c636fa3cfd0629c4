package handlers

import (
	"log"
	"net/http"

	"localgov-backend/internal/models"
	"localgov-backend/internal/repository"
	"localgov-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	services repository.ServiceRepository
}

func NewServiceHandler(services repository.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{services}
}

// List is public so citizens can browse services (and fees) before signing up.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(true)
	if err != nil {
		log.Printf("Error listing services: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to fetch services", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Services", services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id := uint(utils.StringToUint64(c.Param("id")))

	service, err := h.services.FindByID(id)
	if err != nil || !service.IsActive {
		utils.APIResponse(c, http.StatusNotFound, false, "Service not found", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Service Detail", service)
}

// === ADMIN ===

func (h *ServiceHandler) Create(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	service := models.Service{
		Name:              input.Name,
		Category:          input.Category,
		Department:        input.Department,
		Location:          input.Location,
		Fee:               input.Fee,
		Description:       input.Description,
		Windows:           input.Windows,
		RequiredDocuments: input.RequiredDocuments,
		IsActive:          true,
	}

	if err := h.services.Create(&service); err != nil {
		log.Printf("Error creating service: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to create service", nil)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Service Created", service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := uint(utils.StringToUint64(c.Param("id")))

	service, err := h.services.FindByID(id)
	if err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Service not found", nil)
		return
	}

	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "Invalid input", err.Error())
		return
	}

	service.Name = input.Name
	service.Category = input.Category
	service.Department = input.Department
	service.Location = input.Location
	service.Fee = input.Fee
	service.Description = input.Description
	if input.Windows != nil {
		service.Windows = input.Windows
	}
	if input.RequiredDocuments != nil {
		service.RequiredDocuments = input.RequiredDocuments
	}

	if err := h.services.Update(service); err != nil {
		log.Printf("Error updating service: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to update service", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Service Updated", service)
}

// Delete soft-deactivates. Existing bookings keep their denormalized copy.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id := uint(utils.StringToUint64(c.Param("id")))

	if _, err := h.services.FindByID(id); err != nil {
		utils.APIResponse(c, http.StatusNotFound, false, "Service not found", nil)
		return
	}

	if err := h.services.Deactivate(id); err != nil {
		log.Printf("Error deactivating service: %v", err)
		utils.APIResponse(c, http.StatusInternalServerError, false, "Failed to deactivate service", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Service Deactivated", nil)
}
