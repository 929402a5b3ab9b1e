package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oryosefi2/shift-mind/pkg/database"
)

type availabilityPayload struct {
	Slots []struct {
		DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
		StartTime   string `json:"start_time" binding:"required"`
		EndTime     string `json:"end_time" binding:"required"`
		IsAvailable *bool  `json:"is_available"`
	} `json:"slots" binding:"required"`
}

// GetAvailability returns the weekly availability windows of one employee.
func (h *Handler) GetAvailability(c *gin.Context) {
	businessID := c.GetString("businessID")
	employeeID := c.Param("employee_id")

	var rows []database.Availability
	if err := h.DB.Where("business_id = ? AND employee_id = ?", businessID, employeeID).
		Order("day_of_week, start_time").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee_id": employeeID, "slots": rows})
}

// PutAvailability replaces the weekly availability of one employee in a
// single transaction.
func (h *Handler) PutAvailability(c *gin.Context) {
	businessID := c.GetString("businessID")
	employeeID := c.Param("employee_id")

	var exists int64
	h.DB.Model(&database.Employee{}).
		Where("id = ? AND business_id = ?", employeeID, businessID).Count(&exists)
	if exists == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req availabilityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := h.DB.Begin()
	if err := tx.Where("business_id = ? AND employee_id = ?", businessID, employeeID).
		Delete(&database.Availability{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not replace availability"})
		return
	}

	for _, slot := range req.Slots {
		available := true
		if slot.IsAvailable != nil {
			available = *slot.IsAvailable
		}
		row := database.Availability{
			BusinessID:  businessID,
			EmployeeID:  employeeID,
			DayOfWeek:   slot.DayOfWeek,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			IsAvailable: available,
		}
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save availability"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee_id": employeeID, "slot_count": len(req.Slots)})
}
