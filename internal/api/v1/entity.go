package v1

import (
	"context"
	"net/http"

	"github.com/flexprice/assignments/internal/api/dto"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/service"
	"github.com/flexprice/assignments/internal/types"
	"github.com/gin-gonic/gin"
)

// EntityHandler serves one entity collection, /assets or /devices, and the
// bulk customer assignment of that collection
type EntityHandler struct {
	service    service.EntityService
	assignment service.AssignmentService
	log        *logger.Logger
}

func NewEntityHandler(
	service service.EntityService,
	assignment service.AssignmentService,
	log *logger.Logger,
) *EntityHandler {
	return &EntityHandler{
		service:    service,
		assignment: assignment,
		log:        log,
	}
}

func (h *EntityHandler) EntityType() types.EntityType {
	return h.service.EntityType()
}

// @Summary Create an entity
// @Description Create an asset or a device
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param entity body dto.CreateEntityRequest true "Entity"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /{entity_type} [post]
func (h *EntityHandler) CreateEntity(c *gin.Context) {
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateEntity(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an entity
// @Description Get an entity with its assigned customers
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id} [get]
func (h *EntityHandler) GetEntity(c *gin.Context) {
	resp, err := h.service.GetEntity(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List entities
// @Description List entities of a collection
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param filter query types.EntityFilter false "Filter"
// @Success 200 {object} dto.ListEntitiesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /{entity_type} [get]
func (h *EntityHandler) GetEntities(c *gin.Context) {
	var filter types.EntityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetEntities(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an entity
// @Description Update the name, type, label or metadata of an entity
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Param entity body dto.UpdateEntityRequest true "Entity"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id} [put]
func (h *EntityHandler) UpdateEntity(c *gin.Context) {
	var req dto.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateEntity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Import an entity
// @Description Create the entity with the given name or update the existing one, optionally reconciling its customers
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param entity body dto.UpsertEntityRequest true "Entity"
// @Success 200 {object} dto.UpsertEntityResponse
// @Success 201 {object} dto.UpsertEntityResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/import [post]
func (h *EntityHandler) UpsertEntity(c *gin.Context) {
	var req dto.UpsertEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertEntity(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// @Summary Delete an entity
// @Description Delete an entity and its customer assignments
// @Tags Entities
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id} [delete]
func (h *EntityHandler) DeleteEntity(c *gin.Context) {
	if err := h.service.DeleteEntity(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Add customers
// @Description Assign the entity to the given customers
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Param request body dto.UpdateEntityCustomersRequest true "Customers"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/customers [post]
func (h *EntityHandler) AddCustomers(c *gin.Context) {
	h.updateCustomers(c, h.service.AddCustomers)
}

// @Summary Replace customers
// @Description Make the given customers the complete assignment of the entity
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Param request body dto.UpdateEntityCustomersRequest true "Customers"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/customers [put]
func (h *EntityHandler) UpdateCustomers(c *gin.Context) {
	h.updateCustomers(c, h.service.UpdateCustomers)
}

// @Summary Remove customers
// @Description Unassign the entity from the given customers
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Param request body dto.UpdateEntityCustomersRequest true "Customers"
// @Success 200 {object} dto.EntityResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/customers/remove [post]
func (h *EntityHandler) RemoveCustomers(c *gin.Context) {
	h.updateCustomers(c, h.service.RemoveCustomers)
}

// @Summary Assign to a customer
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/customers/{customer_id} [post]
func (h *EntityHandler) AssignToCustomer(c *gin.Context) {
	resp, err := h.service.AssignToCustomer(c.Request.Context(), c.Param("id"), c.Param("customer_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Unassign from a customer
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/customers/{customer_id} [delete]
func (h *EntityHandler) UnassignFromCustomer(c *gin.Context) {
	resp, err := h.service.UnassignFromCustomer(c.Request.Context(), c.Param("id"), c.Param("customer_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Make public
// @Description Assign the entity to the public customer of the tenant
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/public [post]
func (h *EntityHandler) AssignToPublicCustomer(c *gin.Context) {
	resp, err := h.service.AssignToPublicCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Make private
// @Description Unassign the entity from the public customer of the tenant
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param id path string true "Entity ID"
// @Success 200 {object} dto.EntityResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /{entity_type}/{id}/public [delete]
func (h *EntityHandler) UnassignFromPublicCustomer(c *gin.Context) {
	resp, err := h.service.UnassignFromPublicCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Bulk customer assignment
// @Description Apply an action mode to every listed entity. Succeeds only if every entity succeeded, entities that succeeded keep their change.
// @Tags Entities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param request body dto.BulkAssignmentRequest true "Bulk assignment"
// @Success 200 {object} dto.BulkAssignmentResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /{entity_type}/bulk/customers [post]
func (h *EntityHandler) BulkAssign(c *gin.Context) {
	var req dto.BulkAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.assignment.Execute(c.Request.Context(), h.EntityType(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Describe an action mode
// @Description Get the presentation keys of an action mode
// @Tags Entities
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type path string true "Entity collection" Enums(assets, devices)
// @Param mode path string true "Action mode" Enums(assign, manage, unassign)
// @Success 200 {object} dto.DescribeModeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /{entity_type}/modes/{mode} [get]
func (h *EntityHandler) DescribeMode(c *gin.Context) {
	mode := types.ActionMode(c.Param("mode"))
	if err := mode.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.assignment.DescribeMode(h.EntityType(), mode)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type customersUpdate func(ctx context.Context, id string, customerIDs []string) (*dto.EntityResponse, error)

func (h *EntityHandler) updateCustomers(c *gin.Context, update customersUpdate) {
	var req dto.UpdateEntityCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := update(c.Request.Context(), c.Param("id"), req.CustomerIDs)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
