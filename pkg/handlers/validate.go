package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oryosefi2/shift-mind/pkg/database"
)

// ValidateBusiness checks whether the authenticated business has enough data
// to generate a schedule: at least one employee with an hourly rate and at
// least one open availability window.
func (h *Handler) ValidateBusiness(c *gin.Context) {
	businessID := c.GetString("businessID")

	var employeeCount, ratedCount, availabilityCount int64
	h.DB.Model(&database.Employee{}).
		Where("business_id = ?", businessID).Count(&employeeCount)
	h.DB.Model(&database.Employee{}).
		Where("business_id = ? AND hourly_rate IS NOT NULL", businessID).Count(&ratedCount)
	h.DB.Model(&database.Availability{}).
		Where("business_id = ? AND is_available = ?", businessID, true).Count(&availabilityCount)

	if ratedCount == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one employee with an hourly rate is required",
		})
		return
	}

	if availabilityCount == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one availability window is required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"employee_count":     employeeCount,
			"rated_count":        ratedCount,
			"availability_count": availabilityCount,
		},
	})
}
