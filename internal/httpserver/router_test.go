package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mobile-pos/internal/domain"
	"mobile-pos/internal/service/catalog"
	"mobile-pos/internal/service/purchase"
	"github.com/gin-gonic/gin"
)

type stubCatalogSvc struct {
	result   catalog.LookupResult
	err      error
	lastCode string
	list     []domain.Product
	listErr  error
}

func (s *stubCatalogSvc) Lookup(_ context.Context, code string) (catalog.LookupResult, error) {
	s.lastCode = code
	return s.result, s.err
}

func (s *stubCatalogSvc) List(_ context.Context) ([]domain.Product, error) {
	return s.list, s.listErr
}

type stubPurchaseSvc struct {
	recorded  *domain.Transaction
	recordErr error
	lastInput purchase.RecordInput
	got       *domain.Transaction
	getErr    error
	listed    []domain.Transaction
	listErr   error
}

func (s *stubPurchaseSvc) Record(_ context.Context, in purchase.RecordInput) (*domain.Transaction, error) {
	s.lastInput = in
	return s.recorded, s.recordErr
}

func (s *stubPurchaseSvc) Get(_ context.Context, _ int64) (*domain.Transaction, error) {
	return s.got, s.getErr
}

func (s *stubPurchaseSvc) ListRecent(_ context.Context, _ int) ([]domain.Transaction, error) {
	return s.listed, s.listErr
}

func testRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, deps, []string{"http://localhost:3000"})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSearchProduct_Hit(t *testing.T) {
	svc := &stubCatalogSvc{result: catalog.LookupResult{
		Product: &domain.Product{ID: 1, Code: "12345678901", Name: "おーいお茶", Price: 150},
	}}
	router := testRouter(Deps{CatalogSvc: svc, PurchaseSvc: &stubPurchaseSvc{}})

	rec := doJSON(t, router, http.MethodPost, "/api/products/search", `{"code":"12345678901"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.lastCode != "12345678901" {
		t.Fatalf("expected lookup with request code, got %q", svc.lastCode)
	}

	var resp struct {
		ProductInfo *struct {
			ID    int64  `json:"prd_id"`
			Code  string `json:"code"`
			Name  string `json:"name"`
			Price int64  `json:"price"`
		} `json:"product_info"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ProductInfo == nil || resp.ProductInfo.Name != "おーいお茶" || resp.ProductInfo.Price != 150 {
		t.Fatalf("unexpected product_info %+v", resp.ProductInfo)
	}
	if resp.Message != "" {
		t.Fatalf("message must be absent on hit, got %q", resp.Message)
	}
}

func TestSearchProduct_MissIsOK(t *testing.T) {
	svc := &stubCatalogSvc{result: catalog.LookupResult{Message: catalog.NotRegisteredMessage}}
	router := testRouter(Deps{CatalogSvc: svc, PurchaseSvc: &stubPurchaseSvc{}})

	rec := doJSON(t, router, http.MethodPost, "/api/products/search", `{"code":"00000000000"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("miss must be 200, got %d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "商品がマスタ未登録です" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
	if _, ok := resp["product_info"]; ok {
		t.Fatalf("product_info must be absent on miss")
	}
}

func TestSearchProduct_BadRequest(t *testing.T) {
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: &stubPurchaseSvc{}})

	rec := doJSON(t, router, http.MethodPost, "/api/products/search", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSearchProduct_StorageError(t *testing.T) {
	svc := &stubCatalogSvc{err: errors.New("db down")}
	router := testRouter(Deps{CatalogSvc: svc, PurchaseSvc: &stubPurchaseSvc{}})

	rec := doJSON(t, router, http.MethodPost, "/api/products/search", `{"code":"12345678901"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestPurchase_Success(t *testing.T) {
	svc := &stubPurchaseSvc{recorded: &domain.Transaction{ID: 7, TotalAmount: 450}}
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: svc})

	body := `{"items":[{"prd_id":1,"code":"12345678901","name":"おーいお茶","price":150},{"prd_id":2,"code":"12345678902","name":"ソフラン","price":300}]}`
	rec := doJSON(t, router, http.MethodPost, "/api/purchase", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Success     bool   `json:"success"`
		TotalAmount int64  `json:"total_amount"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.TotalAmount != 450 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Message != "購入が完了しました" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(svc.lastInput.Items) != 2 || svc.lastInput.Items[1].Price != 300 {
		t.Fatalf("items not passed through, got %+v", svc.lastInput.Items)
	}
}

func TestPurchase_FailureIsUniform(t *testing.T) {
	svc := &stubPurchaseSvc{recordErr: errors.New("insert failed")}
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: svc})

	rec := doJSON(t, router, http.MethodPost, "/api/purchase", `{"items":[]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var resp struct {
		Success     bool  `json:"success"`
		TotalAmount int64 `json:"total_amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.TotalAmount != 0 {
		t.Fatalf("failure response must carry success=false total=0, got %+v", resp)
	}
}

func TestPurchase_MalformedBody(t *testing.T) {
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: &stubPurchaseSvc{}})

	rec := doJSON(t, router, http.MethodPost, "/api/purchase", `{"items": "nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	svc := &stubPurchaseSvc{getErr: domain.ErrNotFound}
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: svc})

	rec := doJSON(t, router, http.MethodGet, "/api/transactions/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestGetTransaction_Found(t *testing.T) {
	svc := &stubPurchaseSvc{got: &domain.Transaction{
		ID:          42,
		TotalAmount: 150,
		Lines: []domain.TransactionLine{
			{TransactionID: 42, LineNo: 1, ProductID: 1, ProductCode: "12345678901", ProductName: "おーいお茶", ProductPrice: 150},
		},
	}}
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: svc})

	rec := doJSON(t, router, http.MethodGet, "/api/transactions/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		ID      int64 `json:"trd_id"`
		Details []struct {
			LineNo int `json:"dtl_id"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 42 || len(resp.Details) != 1 || resp.Details[0].LineNo != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: &stubPurchaseSvc{}})

	for _, path := range []string{"/health", "/healthz", "/api/health"} {
		rec := doJSON(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestRootHandler(t *testing.T) {
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: &stubPurchaseSvc{}})

	rec := doJSON(t, router, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Mobile POS API" {
		t.Fatalf("unexpected root response %v", resp)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(Deps{CatalogSvc: &stubCatalogSvc{}, PurchaseSvc: &stubPurchaseSvc{}})

	req := httptest.NewRequest(http.MethodOptions, "/api/purchase", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
