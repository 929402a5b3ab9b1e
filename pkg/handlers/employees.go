package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oryosefi2/shift-mind/pkg/database"
)

type employeePayload struct {
	FirstName  string   `json:"first_name" binding:"required"`
	LastName   string   `json:"last_name" binding:"required"`
	HourlyRate *float64 `json:"hourly_rate"`
	Skills     []string `json:"skills"`
}

// ListEmployees returns all employees of the authenticated business.
func (h *Handler) ListEmployees(c *gin.Context) {
	businessID := c.GetString("businessID")

	var rows []database.Employee
	if err := h.DB.Where("business_id = ?", businessID).
		Order("last_name, first_name").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": rows, "count": len(rows)})
}

// CreateEmployee adds an employee to the authenticated business.
func (h *Handler) CreateEmployee(c *gin.Context) {
	businessID := c.GetString("businessID")

	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := database.Employee{
		BusinessID: businessID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		HourlyRate: req.HourlyRate,
		Skills:     strings.Join(req.Skills, ","),
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create employee"})
		return
	}

	c.JSON(http.StatusCreated, row)
}

// UpdateEmployee modifies an employee of the authenticated business.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	businessID := c.GetString("businessID")
	id := c.Param("id")

	var row database.Employee
	if err := h.DB.Where("id = ? AND business_id = ?", id, businessID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row.FirstName = req.FirstName
	row.LastName = req.LastName
	row.HourlyRate = req.HourlyRate
	row.Skills = strings.Join(req.Skills, ",")

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update employee"})
		return
	}

	c.JSON(http.StatusOK, row)
}

// DeleteEmployee removes an employee and its availability windows.
func (h *Handler) DeleteEmployee(c *gin.Context) {
	businessID := c.GetString("businessID")
	id := c.Param("id")

	res := h.DB.Where("id = ? AND business_id = ?", id, businessID).Delete(&database.Employee{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete employee"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	h.DB.Where("employee_id = ? AND business_id = ?", id, businessID).Delete(&database.Availability{})

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}
