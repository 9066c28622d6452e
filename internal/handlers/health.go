package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dnc-ph/clinic-backend/pkg/response"
)

// Health returns a readiness payload, pinging the database when a handle is
// supplied.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				status["status"] = "degraded"
				status["database"] = "unreachable"
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "ok"
		}
		response.Success(c, http.StatusOK, status)
	}
}
