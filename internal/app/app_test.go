package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"salespipeline/internal/authz"
	"salespipeline/internal/config"
	"salespipeline/internal/models"
	"salespipeline/internal/pipeline"
	"salespipeline/internal/repositories"
	"salespipeline/internal/services"
)

const testPassword = "s3cret-pass"

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	op := func(email string, userID, roleID int) config.Operator {
		return config.Operator{Email: email, PasswordHash: string(hash), UserID: userID, RoleID: roleID}
	}

	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "app.db")
	cfg.Files.RootDir = t.TempDir()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.Operators = []config.Operator{
		op("sales@example.com", 1, authz.RoleSales),
		op("other@example.com", 2, authz.RoleSales),
		op("audit@example.com", 3, authz.RoleAudit),
		op("admin@example.com", 4, authz.RoleAdmin),
	}

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func (a *App) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func (a *App) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/login", "", map[string]string{"email": email, "password": testPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var out struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Tokens.AccessToken == "" {
		t.Fatalf("login response: %s", w.Body.String())
	}
	return out.Tokens.AccessToken
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T from %q: %v", v, w.Body.String(), err)
	}
	return v
}

func TestNew_RejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = filepath.Join(t.TempDir(), "x.db")
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("missing jwt secret should fail")
	}

	cfg.Auth.JWTSecret = "s"
	cfg.Auth.Operators = []config.Operator{{Email: "x@example.com", RoleID: 99}}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("unknown role should fail")
	}

	cfg.Auth.Operators = nil
	cfg.Database.Driver = "mysql"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("unsupported driver should fail")
	}
}

func TestAuth(t *testing.T) {
	a := newTestApp(t)

	if w := a.do(t, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Errorf("healthz = %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/leads", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/leads", "garbage", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token = %d", w.Code)
	}

	w := a.do(t, http.MethodPost, "/login", "", map[string]string{"email": "sales@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password = %d", w.Code)
	}
	w = a.do(t, http.MethodPost, "/login", "", map[string]string{"email": "nobody@example.com", "password": testPassword})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown operator = %d", w.Code)
	}

	token := a.login(t, "SALES@example.com")
	if w := a.do(t, http.MethodGet, "/leads", token, nil); w.Code != http.StatusOK {
		t.Errorf("authorized list = %d %s", w.Code, w.Body.String())
	}
}

func TestPipelineEndpoints(t *testing.T) {
	a := newTestApp(t)
	audit := a.login(t, "audit@example.com")

	snap := map[string]any{
		"lead_id":       "ext-1",
		"current_stage": "discovery",
		"bant":          map[string]int{"budget": 25},
	}

	w := a.do(t, http.MethodPost, "/pipeline/actions", audit, map[string]any{
		"action":   "EvaluateTransition",
		"snapshot": snap,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("actions = %d %s", w.Code, w.Body.String())
	}
	resp := decode[struct {
		Status string                  `json:"status"`
		Data   models.TransitionResult `json:"data"`
	}](t, w)
	if resp.Status != pipeline.StatusOK || !resp.Data.CanTransition || *resp.Data.TargetStage != models.StageQualified {
		t.Errorf("evaluate = %+v", resp)
	}

	w = a.do(t, http.MethodPost, "/pipeline/evaluate", audit, map[string]any{
		"snapshot": map[string]any{
			"lead_id":       "ext-2",
			"current_stage": "discovery",
			"bant":          map[string]any{"budget": 12.5, "authority": "8"},
			"engagement":    map[string]any{"demo_requests": "1"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("evaluate with loose types = %d %s", w.Code, w.Body.String())
	}
	loose := decode[struct {
		Data models.TransitionResult `json:"data"`
	}](t, w)
	if loose.Data.BANTScore != 20.5 || !loose.Data.CanTransition {
		t.Errorf("evaluate with loose types = %+v", loose.Data)
	}

	w = a.do(t, http.MethodPost, "/pipeline/actions", audit, map[string]any{"action": "Explode"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown action = %d", w.Code)
	}
	bad := decode[pipeline.ActionResponse](t, w)
	if bad.Status != pipeline.StatusError || len(bad.Errors) == 0 || !strings.Contains(bad.Errors[0], "unknown action") {
		t.Errorf("unknown action response = %+v", bad)
	}

	w = a.do(t, http.MethodPost, "/pipeline/readiness", audit, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("readiness without snapshot = %d", w.Code)
	}

	w = a.do(t, http.MethodPost, "/pipeline/validate", audit, map[string]any{"from": "discovery", "to": "negotiation"})
	if w.Code != http.StatusOK {
		t.Fatalf("validate = %d", w.Code)
	}
	check := decode[struct {
		Data pipeline.TransitionCheck `json:"data"`
	}](t, w)
	if check.Data.Valid || len(check.Data.ValidTargets) == 0 {
		t.Errorf("validate = %+v", check.Data)
	}
}

func TestLeadLifecycle(t *testing.T) {
	a := newTestApp(t)
	sales := a.login(t, "sales@example.com")
	other := a.login(t, "other@example.com")
	audit := a.login(t, "audit@example.com")
	admin := a.login(t, "admin@example.com")

	w := a.do(t, http.MethodPost, "/leads", sales, map[string]any{
		"title":   "Fleet telematics",
		"company": "Acme",
		"bant":    map[string]int{"budget": 20, "need": 10},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	ready := decode[models.Lead](t, w)
	if ready.OwnerID != 1 || ready.Stage != models.StageDiscovery {
		t.Errorf("created = %+v", ready)
	}

	w = a.do(t, http.MethodPost, "/leads", sales, map[string]any{"title": "Cold lead"})
	cold := decode[models.Lead](t, w)

	readyPath := fmt.Sprintf("/leads/%d", ready.ID)
	coldPath := fmt.Sprintf("/leads/%d", cold.ID)

	// visibility
	if w := a.do(t, http.MethodGet, readyPath, other, nil); w.Code != http.StatusForbidden {
		t.Errorf("other owner read = %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, readyPath, audit, nil); w.Code != http.StatusOK {
		t.Errorf("audit read = %d", w.Code)
	}
	if w := a.do(t, http.MethodPost, "/leads", audit, map[string]any{"title": "x"}); w.Code != http.StatusForbidden {
		t.Errorf("audit create = %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/leads/9999", admin, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing lead = %d", w.Code)
	}

	// status and evaluation of a stored lead
	w = a.do(t, http.MethodGet, readyPath+"/status", sales, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	if st := decode[models.StatusReport](t, w); st.BANT.Total != 30 || st.Transition == nil {
		t.Errorf("status = %+v", st)
	}

	// advance
	w = a.do(t, http.MethodPost, readyPath+"/advance", sales, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("advance = %d %s", w.Code, w.Body.String())
	}
	adv := decode[services.AdvanceResult](t, w)
	if adv.Lead.Stage != models.StageQualified {
		t.Errorf("advanced to %s", adv.Lead.Stage)
	}

	w = a.do(t, http.MethodPost, coldPath+"/advance", sales, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("blocked advance = %d %s", w.Code, w.Body.String())
	}
	blocked := decode[services.AdvanceResult](t, w)
	if blocked.Result == nil || blocked.Result.CanTransition || len(blocked.Result.Blockers) == 0 {
		t.Errorf("blocked result = %+v", blocked.Result)
	}
	if blocked.Lead.Stage != models.StageDiscovery {
		t.Errorf("blocked lead moved to %s", blocked.Lead.Stage)
	}

	// manual stage moves follow the graph
	if w := a.do(t, http.MethodPost, coldPath+"/stage", sales, map[string]string{"stage": "negotiation"}); w.Code != http.StatusConflict {
		t.Errorf("discovery -> negotiation = %d", w.Code)
	}
	if w := a.do(t, http.MethodPost, coldPath+"/stage", sales, map[string]string{"stage": "bogus"}); w.Code != http.StatusBadRequest {
		t.Errorf("unknown stage = %d", w.Code)
	}
	if w := a.do(t, http.MethodPost, coldPath+"/stage", sales, map[string]string{"stage": "closed"}); w.Code != http.StatusOK {
		t.Errorf("discovery -> closed = %d %s", w.Code, w.Body.String())
	}

	// signals
	w = a.do(t, http.MethodPut, readyPath+"/signals", sales, map[string]any{
		"bant": map[string]int{"budget": 25, "authority": 20},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signals = %d %s", w.Code, w.Body.String())
	}
	if l := decode[models.Lead](t, w); l.BANT.Authority != 20 || l.Stage != models.StageQualified {
		t.Errorf("signals = %+v", l)
	}

	// reports
	w = a.do(t, http.MethodGet, readyPath+"/report.pdf", sales, nil)
	if w.Code != http.StatusOK || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Errorf("report.pdf = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	w = a.do(t, http.MethodGet, "/reports/summary", audit, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary = %d", w.Code)
	}
	if s := decode[struct {
		Total int `json:"total"`
	}](t, w); s.Total != 2 {
		t.Errorf("summary total = %d", s.Total)
	}
	if w := a.do(t, http.MethodGet, "/reports/summary", sales, nil); w.Code != http.StatusForbidden {
		t.Errorf("sales summary = %d", w.Code)
	}

	// reassign and delete
	if w := a.do(t, http.MethodPost, readyPath+"/assign", sales, map[string]int{"owner_id": 2}); w.Code != http.StatusForbidden {
		t.Errorf("sales assign = %d", w.Code)
	}
	if w := a.do(t, http.MethodPost, readyPath+"/assign", admin, map[string]int{"owner_id": 2}); w.Code != http.StatusNoContent {
		t.Errorf("admin assign = %d %s", w.Code, w.Body.String())
	}
	if w := a.do(t, http.MethodGet, readyPath, other, nil); w.Code != http.StatusOK {
		t.Errorf("new owner read = %d", w.Code)
	}
	if w := a.do(t, http.MethodDelete, coldPath, sales, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete = %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, coldPath, sales, nil); w.Code != http.StatusNotFound {
		t.Errorf("deleted lead = %d", w.Code)
	}
}

func TestWorkOrders(t *testing.T) {
	a := newTestApp(t)
	ops := a.login(t, "admin@example.com")
	audit := a.login(t, "audit@example.com")

	wo := &models.WorkOrder{
		DispatchID: "d-1",
		LeadID:     "1",
		Specialist: models.SpecialistLeadQualifier,
		Action:     "qualify",
		Priority:   models.PriorityHigh,
	}
	if err := repositories.NewWorkOrderRepository(a.DB).Store(context.Background(), wo); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if w := a.do(t, http.MethodGet, "/work-orders", audit, nil); w.Code != http.StatusForbidden {
		t.Errorf("audit list = %d", w.Code)
	}

	w := a.do(t, http.MethodGet, "/work-orders?lead_id=1", ops, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	if list := decode[[]models.WorkOrder](t, w); len(list) != 1 || list[0].DispatchID != "d-1" {
		t.Errorf("list = %+v", list)
	}
	if w := a.do(t, http.MethodGet, "/work-orders?specialist=NOPE", ops, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad specialist = %d", w.Code)
	}

	path := fmt.Sprintf("/work-orders/%d", wo.ID)
	if w := a.do(t, http.MethodPost, path+"/status", ops, map[string]string{"status": "in_progress"}); w.Code != http.StatusOK {
		t.Fatalf("pending -> in_progress = %d %s", w.Code, w.Body.String())
	}
	if w := a.do(t, http.MethodPost, path+"/status", ops, map[string]string{"status": "pending"}); w.Code != http.StatusConflict {
		t.Errorf("in_progress -> pending = %d", w.Code)
	}
	if w := a.do(t, http.MethodGet, "/work-orders/999", ops, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing work order = %d", w.Code)
	}
}
