package server

import (
	"errors"
	"fmt"
	"net/http"

	"cenovnik/internal/listing"

	"github.com/gin-gonic/gin"
)

func (s *Server) rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Backend is running.")
}

func (s *Server) healthHandler(c *gin.Context) {
	resp := HealthResponse{
		Status:  "up",
		Storage: ComponentHealth{Status: "up"},
	}

	if err := s.storage.Health(c.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.Storage = ComponentHealth{Status: "down", Error: err.Error()}
	}

	c.JSON(http.StatusOK, resp)
}

// uploadHandler handles POST /upload?market=&location= with a multipart "file"
func (s *Server) uploadHandler(c *gin.Context) {
	market := c.Query("market")
	location := c.Query("location")
	if market == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Market is required"})
		return
	}

	if s.cfg.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:   "File too large",
				Details: fmt.Sprintf("limit is %d bytes", tooLarge.Limit),
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File not provided or upload failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "File not provided or upload failed",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	entry, err := s.listings.Upload(c.Request.Context(), listing.UploadRequest{
		Market:       market,
		Location:     location,
		OriginalName: header.Filename,
		Body:         file,
	})
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrMarketRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Market is required"})
		case errors.Is(err, listing.ErrFileRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File not provided or upload failed"})
		case errors.Is(err, listing.ErrInvalidKey):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid market or location", Details: err.Error()})
		default:
			s.logger.Error("Upload failed",
				"market", market,
				"location", location,
				"file", header.Filename,
				"error", err,
				"request_id", c.GetString("request_id"),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to process file",
				Details: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Message:    fmt.Sprintf("Products for %s updated successfully", label(market, location)),
		Products:   entry.Products,
		UpdateInfo: entry.UpdateInfo,
	})
}

// productsHandler handles GET /products?market=&location=
func (s *Server) productsHandler(c *gin.Context) {
	entry, err := s.listings.Lookup(c.Request.Context(), c.Query("market"), c.Query("location"))
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrMarketRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Market is required"})
		case errors.Is(err, listing.ErrInvalidKey):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid market or location", Details: err.Error()})
		default:
			s.logger.Error("Lookup failed",
				"market", c.Query("market"),
				"location", c.Query("location"),
				"error", err,
				"request_id", c.GetString("request_id"),
			)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "Failed to load products",
				Details: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, ProductsResponse{
		Products:   entry.Products,
		UpdateInfo: entry.UpdateInfo,
	})
}

func (s *Server) marketsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.markets)
}

func label(market, location string) string {
	if location == "" {
		return market
	}
	return fmt.Sprintf("%s (%s)", market, location)
}
