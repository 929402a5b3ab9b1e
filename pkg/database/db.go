package database

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Employee represents the employees table.
type Employee struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	BusinessID string    `gorm:"index;not null" json:"business_id"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	LastName   string    `gorm:"not null" json:"last_name"`
	HourlyRate *float64  `json:"hourly_rate"`
	Skills     string    `json:"skills"` // comma separated
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID when none was provided.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Availability represents the availability table: one weekly window per row.
type Availability struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BusinessID  string    `gorm:"index;not null" json:"business_id"`
	EmployeeID  string    `gorm:"index;not null" json:"employee_id"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime   string    `gorm:"not null" json:"start_time"`  // HH:MM
	EndTime     string    `gorm:"not null" json:"end_time"`    // HH:MM
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Schedule represents the schedules table: one generated weekly draft.
type Schedule struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	BusinessID    string    `gorm:"index;not null" json:"business_id"`
	Name          string    `json:"name"`
	WeekStartDate time.Time `gorm:"index;not null" json:"week_start_date"`
	Status        string    `gorm:"default:draft" json:"status"`
	TotalHours    int       `json:"total_hours"`
	TotalCost     float64   `json:"total_cost"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Shift represents the shifts table, keyed by the schedule that produced it.
type Shift struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	BusinessID   string    `gorm:"index;not null" json:"business_id"`
	ScheduleID   string    `gorm:"index;not null" json:"schedule_id"`
	EmployeeID   string    `gorm:"index;not null" json:"employee_id"`
	Date         time.Time `gorm:"not null" json:"date"`
	StartTime    string    `gorm:"not null" json:"start_time"`
	EndTime      string    `gorm:"not null" json:"end_time"`
	BreakMinutes int       `json:"break_minutes"`
	HourlyRate   float64   `json:"hourly_rate"`
	TotalCost    float64   `json:"total_cost"`
	Status       string    `gorm:"default:scheduled" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// APIKey represents the api_keys table. The key name doubles as the business
// ID the key is scoped to.
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table.
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalShifts    int    `gorm:"default:0" json:"total_shifts"`
	TotalEmployees int    `gorm:"default:0" json:"total_employees"`
}

// MasterUser represents the master_users table.
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects Postgres; otherwise a SQLite file at DATA_PATH is used.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "shiftmind.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	db.AutoMigrate(
		&Employee{},
		&Availability{},
		&Schedule{},
		&Shift{},
		&APIKey{},
		&APIUsage{},
		&MasterUser{},
	)

	return db
}
