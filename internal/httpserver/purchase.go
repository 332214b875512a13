package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mobile-pos/internal/domain"
	"mobile-pos/internal/service/purchase"
	"github.com/gin-gonic/gin"
)

// PurchaseService is the slice of the purchase service the handlers need.
type PurchaseService interface {
	Record(ctx context.Context, in purchase.RecordInput) (*domain.Transaction, error)
	Get(ctx context.Context, id int64) (*domain.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error)
}

type purchaseItem struct {
	ProductID int64  `json:"prd_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

type purchaseRequest struct {
	EmployeeCode string         `json:"emp_cd"`
	StoreCode    string         `json:"store_cd"`
	POSNo        string         `json:"pos_no"`
	Items        []purchaseItem `json:"items"`
}

type purchaseResponse struct {
	Success     bool   `json:"success"`
	TotalAmount int64  `json:"total_amount"`
	Message     string `json:"message"`
}

type transactionView struct {
	ID           int64                 `json:"trd_id"`
	RecordedAt   time.Time             `json:"datetime"`
	EmployeeCode string                `json:"emp_cd"`
	StoreCode    string                `json:"store_cd"`
	POSNo        string                `json:"pos_no"`
	TotalAmount  int64                 `json:"total_amt"`
	Details      []transactionLineView `json:"details,omitempty"`
}

type transactionLineView struct {
	LineNo       int    `json:"dtl_id"`
	ProductID    int64  `json:"prd_id"`
	ProductCode  string `json:"prd_code"`
	ProductName  string `json:"prd_name"`
	ProductPrice int64  `json:"prd_price"`
}

func purchaseHandler(svc PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req purchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, purchaseResponse{Message: "invalid purchase request"})
			return
		}

		items := make([]purchase.Item, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, purchase.Item{
				ProductID: item.ProductID,
				Code:      item.Code,
				Name:      item.Name,
				Price:     item.Price,
			})
		}

		recorded, err := svc.Record(c.Request.Context(), purchase.RecordInput{
			EmployeeCode: req.EmployeeCode,
			StoreCode:    req.StoreCode,
			POSNo:        req.POSNo,
			Items:        items,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, purchaseResponse{Message: "purchase failed"})
			return
		}

		c.JSON(http.StatusOK, purchaseResponse{
			Success:     true,
			TotalAmount: recorded.TotalAmount,
			Message:     "購入が完了しました",
		})
	}
}

func getTransactionHandler(svc PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
			return
		}

		t, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction lookup failed"})
			return
		}
		c.JSON(http.StatusOK, toTransactionView(*t))
	}
}

func listTransactionsHandler(svc PurchaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = parsed
		}

		transactions, err := svc.ListRecent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction listing failed"})
			return
		}
		out := make([]transactionView, 0, len(transactions))
		for _, t := range transactions {
			out = append(out, toTransactionView(t))
		}
		c.JSON(http.StatusOK, gin.H{"transactions": out})
	}
}

func toTransactionView(t domain.Transaction) transactionView {
	view := transactionView{
		ID:           t.ID,
		RecordedAt:   t.RecordedAt,
		EmployeeCode: t.EmployeeCode,
		StoreCode:    t.StoreCode,
		POSNo:        t.POSNo,
		TotalAmount:  t.TotalAmount,
	}
	for _, line := range t.Lines {
		view.Details = append(view.Details, transactionLineView{
			LineNo:       line.LineNo,
			ProductID:    line.ProductID,
			ProductCode:  line.ProductCode,
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice,
		})
	}
	return view
}
