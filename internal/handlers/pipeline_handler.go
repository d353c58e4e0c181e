package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipeline/internal/pipeline"
)

// PipelineHandler exposes the stateless engine over the action envelope.
type PipelineHandler struct {
	Engine *pipeline.Orchestrator
}

func NewPipelineHandler(engine *pipeline.Orchestrator) *PipelineHandler {
	return &PipelineHandler{Engine: engine}
}

// @Summary      Run a pipeline action
// @Description  Evaluates snapshots without touching stored leads. The action field selects the operation.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/actions [post]
func (h *PipelineHandler) Actions(c *gin.Context) {
	h.run(c, "")
}

// @Summary      Evaluate a transition
// @Description  Decides whether the snapshot's lead can move to its next stage. The envelope's action field is ignored.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/evaluate [post]
func (h *PipelineHandler) Evaluate(c *gin.Context) {
	h.run(c, pipeline.ActionEvaluateTransition)
}

// @Summary      Full status
// @Description  Returns the scoring breakdown, the transition result and the recommendations. The envelope's action field is ignored.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/status [post]
func (h *PipelineHandler) Status(c *gin.Context) {
	h.run(c, pipeline.ActionGetStatus)
}

// @Summary      Check readiness
// @Description  Returns the readiness score and whether the lead could move now. The envelope's action field is ignored.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/readiness [post]
func (h *PipelineHandler) Readiness(c *gin.Context) {
	h.run(c, pipeline.ActionCheckReadiness)
}

// @Summary      Prioritized recommendations
// @Description  Returns the next steps for the snapshot's stage, most urgent first. The envelope's action field is ignored.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/recommendations [post]
func (h *PipelineHandler) Recommendations(c *gin.Context) {
	h.run(c, pipeline.ActionGetRecommendations)
}

// @Summary      Evaluate many snapshots
// @Description  Evaluates every snapshot; a bad item fails alone. The envelope's action field is ignored.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/batch [post]
func (h *PipelineHandler) Batch(c *gin.Context) {
	h.run(c, pipeline.ActionBatchEvaluate)
}

// @Summary      Validate a stage move
// @Description  Checks from and to against the stage graph. The envelope's action field is ignored.
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        request  body      pipeline.ActionRequest  true  "Action envelope"
// @Success      200      {object}  pipeline.ActionResponse
// @Failure      400      {object}  pipeline.ActionResponse
// @Security     BearerAuth
// @Router       /pipeline/validate [post]
func (h *PipelineHandler) Validate(c *gin.Context) {
	h.run(c, pipeline.ActionValidateTransition)
}

func (h *PipelineHandler) run(c *gin.Context, action pipeline.Action) {
	var req pipeline.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, pipeline.ActionResponse{Status: pipeline.StatusError, Errors: []string{err.Error()}})
		return
	}
	if action != "" {
		req.Action = action
	}

	resp := h.Engine.Execute(c.Request.Context(), req)
	if resp.Status != pipeline.StatusOK {
		userID, _ := getUserAndRole(c)
		log.Printf("[pipeline][%s] rejected for userID=%d: %v", req.Action, userID, resp.Errors)
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
