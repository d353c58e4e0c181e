package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salespipeline/internal/authz"
	"salespipeline/internal/handlers"
	"salespipeline/internal/middleware"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Pipeline   *handlers.PipelineHandler
	Leads      *handlers.LeadHandler
	WorkOrders *handlers.WorkOrderHandler
	Reports    *handlers.ReportHandler
}

func SetupRoutes(r *gin.Engine, jwtSecret []byte, h Handlers) *gin.Engine {
	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/login", h.Auth.Login)

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtSecret))
	// pipeline actions only compute, audit may call them
	r.Use(middleware.ReadOnlyGuard("/pipeline/"))

	// PIPELINE (stateless engine)
	p := r.Group("/pipeline")
	{
		p.POST("/actions", h.Pipeline.Actions)
		p.POST("/evaluate", h.Pipeline.Evaluate)
		p.POST("/status", h.Pipeline.Status)
		p.POST("/readiness", h.Pipeline.Readiness)
		p.POST("/recommendations", h.Pipeline.Recommendations)
		p.POST("/batch", h.Pipeline.Batch)
		p.POST("/validate", h.Pipeline.Validate)
	}

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("", h.Leads.Create)
		leads.GET("", h.Leads.List)
		leads.GET("/:id", h.Leads.GetByID)
		leads.PUT("/:id", h.Leads.Update)
		leads.DELETE("/:id", h.Leads.Delete)
		leads.POST("/:id/assign", h.Leads.Assign)
		leads.PUT("/:id/signals", h.Leads.UpdateSignals)
		leads.POST("/:id/evaluate", h.Leads.Evaluate)
		leads.GET("/:id/status", h.Leads.Status)
		leads.POST("/:id/advance", h.Leads.Advance)
		leads.POST("/:id/stage", h.Leads.SetStage)
		leads.GET("/:id/report.pdf", h.Leads.ReportPDF)
		leads.POST("/:id/report", h.Leads.SaveReport)
	}

	// WORK ORDERS (sales/ops/mgmt/admin)
	wo := r.Group("/work-orders", middleware.RequireRoles(authz.Writers...))
	{
		wo.GET("", h.WorkOrders.GetAll)
		wo.GET("/:id", h.WorkOrders.GetByID)
		wo.POST("/:id/status", h.WorkOrders.ChangeStatus)
	}

	// REPORTS (audit/ops/mgmt/admin)
	reports := r.Group("/reports",
		middleware.RequireRoles(authz.RoleAudit, authz.RoleOperations, authz.RoleManagement, authz.RoleAdmin),
	)
	{
		reports.GET("/summary", h.Reports.GetSummary)
	}

	return r
}
