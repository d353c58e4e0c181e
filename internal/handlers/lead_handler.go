package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipeline/internal/authz"
	"salespipeline/internal/models"
	"salespipeline/internal/pdf"
	"salespipeline/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
	Reports pdf.Generator
}

func NewLeadHandler(service *services.LeadService, reports pdf.Generator) *LeadHandler {
	return &LeadHandler{Service: service, Reports: reports}
}

type CreateLeadRequest struct {
	Title        string                   `json:"title" binding:"required" example:"Fleet telematics rollout"`
	Company      string                   `json:"company" example:"Acme Logistics"`
	Stage        models.Stage             `json:"stage" example:"discovery"`
	BANT         models.BANTInput         `json:"bant"`
	Intelligence models.IntelligenceInput `json:"intelligence"`
	Engagement   models.EngagementInput   `json:"engagement"`
}

type UpdateLeadRequest struct {
	Title   string `json:"title"`
	Company string `json:"company"`
}

type AssignLeadRequest struct {
	OwnerID int `json:"owner_id" binding:"required"`
}

type SetStageRequest struct {
	Stage string `json:"stage" binding:"required" example:"qualified"`
}

// load fetches a lead the caller may see. Writes additionally need the
// caller to own the lead or hold an elevated role.
func (h *LeadHandler) load(c *gin.Context, write bool) (*models.Lead, bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return nil, false
	}
	userID, roleID := getUserAndRole(c)
	if write && authz.IsReadOnly(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "read-only role"})
		return nil, false
	}

	lead, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "leads", err)
		return nil, false
	}
	allowed := authz.CanViewAll(roleID)
	if write {
		allowed = authz.IsElevated(roleID)
	}
	if lead.OwnerID != userID && !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return lead, true
}

// @Summary      Create a lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      CreateLeadRequest  true  "Lead"
// @Success      201   {object}  models.Lead
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, roleID := getUserAndRole(c)
	if authz.IsReadOnly(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "read-only role"})
		return
	}

	stage := models.Stage("")
	if req.Stage != "" {
		st, err := models.ParseStage(string(req.Stage))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		stage = st
	}

	// owner comes from the token, never from the body
	lead := &models.Lead{
		Title:        req.Title,
		Company:      req.Company,
		OwnerID:      userID,
		Stage:        stage,
		BANT:         req.BANT,
		Intelligence: req.Intelligence,
		Engagement:   req.Engagement,
	}
	if err := h.Service.Create(c.Request.Context(), lead); err != nil {
		respondError(c, "leads][create", err)
		return
	}
	log.Printf("[leads][create] id=%d owner=%d stage=%s", lead.ID, userID, lead.Stage)
	c.JSON(http.StatusCreated, lead)
}

// @Summary      List leads
// @Description  Sales see their own leads; elevated and audit roles see all.
// @Tags         Leads
// @Produce      json
// @Param        stage  query     string  false  "Stage filter"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        size   query     int     false  "Page size"
// @Success      200    {array}   models.Lead
// @Security     BearerAuth
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	limit, offset := pageParams(c)
	userID, roleID := getUserAndRole(c)

	var filter models.LeadFilter
	if !authz.CanViewAll(roleID) {
		filter.OwnerID = &userID
	}
	if s := c.Query("stage"); s != "" {
		st, err := models.ParseStage(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Stage = &st
	}

	leads, err := h.Service.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondError(c, "leads][list", err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// @Summary      Get a lead
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      200  {object}  models.Lead
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /leads/{id} [get]
func (h *LeadHandler) GetByID(c *gin.Context) {
	lead, ok := h.load(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lead)
}

// @Summary      Update lead details
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Lead ID"
// @Param        lead  body      UpdateLeadRequest  true  "Details"
// @Success      200   {object}  models.Lead
// @Security     BearerAuth
// @Router       /leads/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) {
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Service.UpdateDetails(c.Request.Context(), lead.ID, req.Title, req.Company)
	if err != nil {
		respondError(c, "leads][update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a lead
// @Tags         Leads
// @Param        id   path  int  true  "Lead ID"
// @Success      204
// @Security     BearerAuth
// @Router       /leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), lead.ID); err != nil {
		respondError(c, "leads][delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Reassign a lead
// @Tags         Leads
// @Accept       json
// @Param        id    path  int                true  "Lead ID"
// @Param        body  body  AssignLeadRequest  true  "New owner"
// @Success      204
// @Security     BearerAuth
// @Router       /leads/{id}/assign [post]
func (h *LeadHandler) Assign(c *gin.Context) {
	_, roleID := getUserAndRole(c)
	if !authz.IsElevated(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	var req AssignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.AssignOwner(c.Request.Context(), lead.ID, req.OwnerID); err != nil {
		respondError(c, "leads][assign", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Replace scoring signals
// @Description  Nil sections are left untouched.
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Lead ID"
// @Param        signals  body      models.LeadSignalsUpdate  true  "Signals"
// @Success      200      {object}  models.Lead
// @Security     BearerAuth
// @Router       /leads/{id}/signals [put]
func (h *LeadHandler) UpdateSignals(c *gin.Context) {
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	var req models.LeadSignalsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Service.UpdateSignals(c.Request.Context(), lead.ID, req)
	if err != nil {
		respondError(c, "leads][signals", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Evaluate a stored lead
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      200  {object}  models.TransitionResult
// @Security     BearerAuth
// @Router       /leads/{id}/evaluate [post]
func (h *LeadHandler) Evaluate(c *gin.Context) {
	lead, ok := h.load(c, false)
	if !ok {
		return
	}
	_, res, err := h.Service.Evaluate(c.Request.Context(), lead.ID)
	if err != nil {
		respondError(c, "leads][evaluate", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Full status of a stored lead
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      200  {object}  models.StatusReport
// @Security     BearerAuth
// @Router       /leads/{id}/status [get]
func (h *LeadHandler) Status(c *gin.Context) {
	lead, ok := h.load(c, false)
	if !ok {
		return
	}
	_, report, err := h.Service.Status(c.Request.Context(), lead.ID)
	if err != nil {
		respondError(c, "leads][status", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Advance a lead
// @Description  Moves the lead to the engine's target stage and dispatches delegations. A blocked lead returns 409 with the evaluation.
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      200  {object}  services.AdvanceResult
// @Failure      409  {object}  services.AdvanceResult
// @Security     BearerAuth
// @Router       /leads/{id}/advance [post]
func (h *LeadHandler) Advance(c *gin.Context) {
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	out, err := h.Service.Advance(c.Request.Context(), lead.ID)
	if errors.Is(err, services.ErrTransitionBlocked) {
		c.JSON(http.StatusConflict, out)
		return
	}
	if err != nil {
		respondError(c, "leads][advance", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Move a lead manually
// @Description  Only edges of the stage graph are accepted; 409 lists the valid targets.
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Lead ID"
// @Param        body  body      SetStageRequest  true  "Target stage"
// @Success      200   {object}  models.Lead
// @Failure      409   {object}  map[string]string
// @Security     BearerAuth
// @Router       /leads/{id}/stage [post]
func (h *LeadHandler) SetStage(c *gin.Context) {
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	var req SetStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := models.ParseStage(req.Stage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	moved, err := h.Service.SetStage(c.Request.Context(), lead.ID, to)
	if err != nil {
		respondError(c, "leads][stage", err)
		return
	}
	c.JSON(http.StatusOK, moved)
}

// @Summary      Lead status report as PDF
// @Tags         Leads
// @Produce      application/pdf
// @Param        id   path  int  true  "Lead ID"
// @Success      200
// @Security     BearerAuth
// @Router       /leads/{id}/report.pdf [get]
func (h *LeadHandler) ReportPDF(c *gin.Context) {
	lead, ok := h.load(c, false)
	if !ok {
		return
	}
	_, report, err := h.Service.Status(c.Request.Context(), lead.ID)
	if err != nil {
		respondError(c, "leads][report", err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="lead_`+models.LeadRef(lead.ID)+`.pdf"`)
	c.Status(http.StatusOK)
	if err := h.Reports.Render(c.Writer, lead, report); err != nil {
		log.Printf("[leads][report][err] lead=%d: %v", lead.ID, err)
	}
}

// @Summary      Archive a lead status report
// @Tags         Leads
// @Produce      json
// @Param        id   path      int  true  "Lead ID"
// @Success      201  {object}  map[string]string
// @Security     BearerAuth
// @Router       /leads/{id}/report [post]
func (h *LeadHandler) SaveReport(c *gin.Context) {
	lead, ok := h.load(c, true)
	if !ok {
		return
	}
	_, report, err := h.Service.Status(c.Request.Context(), lead.ID)
	if err != nil {
		respondError(c, "leads][report", err)
		return
	}
	path, err := h.Reports.Save(lead, report)
	if err != nil {
		respondError(c, "leads][report", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}
