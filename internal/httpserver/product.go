package httpserver

import (
	"context"
	"net/http"

	"mobile-pos/internal/domain"
	"mobile-pos/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogService is the slice of the catalog service the handlers need.
type CatalogService interface {
	Lookup(ctx context.Context, code string) (catalog.LookupResult, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type searchProductRequest struct {
	Code string `json:"code" binding:"required"`
}

type productInfo struct {
	ID    int64  `json:"prd_id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Exactly one of ProductInfo/Message is populated. A miss is a 200 response
// carrying the message, not an error.
type searchProductResponse struct {
	ProductInfo *productInfo `json:"product_info,omitempty"`
	Message     string       `json:"message,omitempty"`
}

func searchProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req searchProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
			return
		}

		result, err := svc.Lookup(c.Request.Context(), req.Code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product search failed"})
			return
		}

		resp := searchProductResponse{Message: result.Message}
		if result.Product != nil {
			resp.ProductInfo = toProductInfo(*result.Product)
		}
		c.JSON(http.StatusOK, resp)
	}
}

func listProductsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "product listing failed"})
			return
		}
		out := make([]productInfo, 0, len(products))
		for _, p := range products {
			out = append(out, *toProductInfo(p))
		}
		c.JSON(http.StatusOK, gin.H{"products": out})
	}
}

func toProductInfo(p domain.Product) *productInfo {
	return &productInfo{
		ID:    p.ID,
		Code:  p.Code,
		Name:  p.Name,
		Price: p.Price,
	}
}
