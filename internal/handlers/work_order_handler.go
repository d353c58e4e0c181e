package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salespipeline/internal/models"
	"salespipeline/internal/services"
)

type WorkOrderHandler struct {
	service services.WorkOrderService
}

func NewWorkOrderHandler(service services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{service: service}
}

type ChangeWorkOrderStatusRequest struct {
	Status    models.WorkOrderStatus `json:"status" binding:"required" example:"in_progress"`
	LastError *string                `json:"last_error,omitempty"`
}

func parseWorkOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// @Summary      List work orders
// @Description  Most urgent first.
// @Tags         WorkOrders
// @Produce      json
// @Param        lead_id     query     string  false  "Lead reference"
// @Param        specialist  query     string  false  "Specialist"
// @Param        status      query     string  false  "pending|in_progress|done|failed"
// @Param        limit       query     int     false  "Max rows"
// @Success      200         {array}   models.WorkOrder
// @Security     BearerAuth
// @Router       /work-orders [get]
func (h *WorkOrderHandler) GetAll(c *gin.Context) {
	var filter models.WorkOrderFilter
	if v := c.Query("lead_id"); v != "" {
		filter.LeadID = &v
	}
	if v := c.Query("specialist"); v != "" {
		s := models.Specialist(v)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown specialist"})
			return
		}
		filter.Specialist = &s
	}
	if v := c.Query("status"); v != "" {
		st := models.WorkOrderStatus(v)
		if _, known := models.WorkOrderTransitions[st]; !known {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		filter.Status = &st
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "work-orders][list", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// @Summary      Get a work order
// @Tags         WorkOrders
// @Produce      json
// @Param        id   path      int  true  "Work order ID"
// @Success      200  {object}  models.WorkOrder
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *gin.Context) {
	id, ok := parseWorkOrderID(c)
	if !ok {
		return
	}
	wo, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "work-orders][get", err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

// @Summary      Change work order status
// @Description  pending -> in_progress -> done | failed; failed orders can be retried.
// @Tags         WorkOrders
// @Accept       json
// @Produce      json
// @Param        id    path      int                           true  "Work order ID"
// @Param        body  body      ChangeWorkOrderStatusRequest  true  "New status"
// @Success      200   {object}  models.WorkOrder
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /work-orders/{id}/status [post]
func (h *WorkOrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseWorkOrderID(c)
	if !ok {
		return
	}
	var req ChangeWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := getUserAndRole(c)

	wo, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.LastError)
	if err != nil {
		respondError(c, "work-orders][status", err)
		return
	}
	log.Printf("[work-orders][status] id=%d -> %s by userID=%d", id, wo.Status, userID)
	c.JSON(http.StatusOK, wo)
}
