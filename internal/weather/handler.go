package weather

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the weather endpoint.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) get(c *gin.Context) {
	report, err := h.client.Current(c.Request.Context())
	if err != nil {
		var upstream *UpstreamError
		switch {
		case errors.Is(err, ErrNotConfigured):
			log.Println("[weather] OPENWEATHER_API_KEY is not set")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Weather service is not configured."})
		case errors.As(err, &upstream):
			log.Printf("[weather] upstream returned status %d", upstream.StatusCode)
			c.JSON(upstream.StatusCode, gin.H{"error": "Failed to fetch weather data from provider."})
		default:
			log.Printf("[weather] fetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal error occurred while fetching weather."})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// Register attaches the weather route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
}
