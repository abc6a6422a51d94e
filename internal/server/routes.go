package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Abdudhi100/swot-coach/internal/models"
	"github.com/Abdudhi100/swot-coach/internal/recur"
	"github.com/Abdudhi100/swot-coach/internal/streak"
	"github.com/Abdudhi100/swot-coach/internal/swot"
	"github.com/Abdudhi100/swot-coach/internal/task"
	"github.com/Abdudhi100/swot-coach/internal/taskgen"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// userHeader identifies the acting user. Authentication is handled
// upstream of this service; the header is the seam it plugs into.
const userHeader = "X-User-ID"

const dateLayout = "2006-01-02"

// registerRoutes sets up all API routes on the gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, loc *time.Location) {
	api := router.Group("/api")

	api.POST("/swot", handleSWOTCreate(db, loc))
	api.GET("/swot", handleSWOTList(db))
	api.PATCH("/swot/:id", handleSWOTUpdate(db))
	api.DELETE("/swot/:id", handleSWOTDeactivate(db))

	api.GET("/tasks", handleTaskList(db, loc))
	api.POST("/tasks", handleTaskCreate(db, loc))
	api.POST("/tasks/:id/done", handleTaskDone(db, loc))

	api.GET("/streak", handleStreak(db))

	api.POST("/generate", handleGenerate(db, loc))
}

// ownerID resolves the acting user from the request header. On failure it
// writes the 400 response and returns false.
func ownerID(c *gin.Context) (uint, bool) {
	raw := c.GetHeader(userHeader)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": userHeader + " header is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + userHeader + " header"})
		return 0, false
	}
	return uint(id), true
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// itemResponse is the JSON shape of a SWOT item.
type itemResponse struct {
	ID          uint   `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
	DowMask     int    `json:"dow_mask"`
	MonthDay    *int   `json:"month_day"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

func itemJSON(item *models.SWOTItem) itemResponse {
	return itemResponse{
		ID:          item.ID,
		Category:    item.Category,
		Description: item.Description,
		Frequency:   item.Frequency,
		DowMask:     item.DowMask,
		MonthDay:    item.MonthDay,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
	}
}

// taskResponse is the JSON shape of a task.
type taskResponse struct {
	ID          uint     `json:"id"`
	ItemID      uint     `json:"swot_item"`
	Date        string   `json:"date"`
	Label       string   `json:"label"`
	Status      string   `json:"status"`
	Value       *float64 `json:"value"`
	CreatedAt   string   `json:"created_at"`
	CompletedAt *string  `json:"completed_at"`
}

func taskJSON(t *models.Task) taskResponse {
	resp := taskResponse{
		ID:        t.ID,
		ItemID:    t.ItemID,
		Date:      t.Date.Format(dateLayout),
		Label:     t.Label,
		Status:    t.Status,
		Value:     t.Value,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

func handleSWOTCreate(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	type request struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		Frequency   string `json:"frequency"`
		DowMask     *int   `json:"dow_mask"`
		MonthDay    *int   `json:"month_day"`
	}
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}

		item, err := swot.Create(db, swot.CreateOpts{
			OwnerID:     owner,
			Category:    req.Category,
			Description: req.Description,
			Frequency:   req.Frequency,
			DowMask:     req.DowMask,
			MonthDay:    req.MonthDay,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		// New items surface today's task immediately.
		if _, err := taskgen.ForItem(db, item, recur.Today(loc)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, itemJSON(item))
	}
}

func handleSWOTList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		items, err := swot.List(db, owner, c.Query("active") == "true")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		resp := make([]itemResponse, 0, len(items))
		for i := range items {
			resp = append(resp, itemJSON(&items[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handleSWOTUpdate(db *gorm.DB) gin.HandlerFunc {
	type request struct {
		Description *string `json:"description"`
		Frequency   *string `json:"frequency"`
		DowMask     *int    `json:"dow_mask"`
		MonthDay    *int    `json:"month_day"`
		Active      *bool   `json:"active"`
	}
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}

		item, err := swot.Update(db, owner, id, swot.UpdateOpts{
			Description: req.Description,
			Frequency:   req.Frequency,
			DowMask:     req.DowMask,
			MonthDay:    req.MonthDay,
			Active:      req.Active,
		})
		switch {
		case errors.Is(err, swot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "item not found"})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusOK, itemJSON(item))
		}
	}
}

func handleSWOTDeactivate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		err := swot.Deactivate(db, owner, id)
		switch {
		case errors.Is(err, swot.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		default:
			c.Status(http.StatusNoContent)
		}
	}
}

func handleTaskList(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}

		target := recur.Today(loc)
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format YYYY-MM-DD."})
				return
			}
			target = recur.DateOnly(parsed)
		}

		tasks, err := task.List(db, owner, &target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		resp := make([]taskResponse, 0, len(tasks))
		for i := range tasks {
			resp = append(resp, taskJSON(&tasks[i]))
		}
		c.JSON(http.StatusOK, resp)
	}
}

func handleTaskCreate(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	type request struct {
		ItemID uint   `json:"swot_item"`
		Date   string `json:"date"`
		Label  string `json:"label"`
	}
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}

		item, err := swot.Get(db, owner, req.ItemID)
		if errors.Is(err, swot.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "item not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		target := recur.Today(loc)
		if req.Date != "" {
			parsed, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format YYYY-MM-DD."})
				return
			}
			target = recur.DateOnly(parsed)
		}

		label := req.Label
		if label == "" {
			label = swot.Label(item)
		}

		created, wasNew, err := task.Create(db, task.CreateOpts{
			OwnerID: owner,
			ItemID:  item.ID,
			Date:    target,
			Label:   label,
		}, recur.Today(loc))
		switch {
		case errors.Is(err, task.ErrPastImmutable):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Past tasks are immutable."})
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case wasNew:
			c.JSON(http.StatusCreated, taskJSON(created))
		default:
			c.JSON(http.StatusOK, taskJSON(created))
		}
	}
}

func handleTaskDone(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	type request struct {
		Value *float64 `json:"value"`
	}
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}

		var req request
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid value"})
				return
			}
		}

		done, err := task.Complete(db, owner, id, recur.Today(loc), req.Value)
		switch {
		case errors.Is(err, task.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "task not found"})
		case errors.Is(err, task.ErrPastImmutable):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Past tasks are immutable."})
		case errors.Is(err, task.ErrInvalidValue):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "value must be >= 0"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		default:
			c.JSON(http.StatusOK, taskJSON(done))
		}
	}
}

func handleStreak(db *gorm.DB) gin.HandlerFunc {
	type response struct {
		Count   int     `json:"count"`
		LastDay *string `json:"last_day"`
	}
	return func(c *gin.Context) {
		owner, ok := ownerID(c)
		if !ok {
			return
		}
		s, err := streak.Get(db, owner)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		resp := response{Count: s.Count}
		if s.LastDay != nil {
			d := s.LastDay.Format(dateLayout)
			resp.LastDay = &d
		}
		c.JSON(http.StatusOK, resp)
	}
}

// handleGenerate is the seam the external scheduling trigger calls: it
// runs the idempotent batch for the given date (default today).
func handleGenerate(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := recur.Today(loc)
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format YYYY-MM-DD."})
				return
			}
			target = recur.DateOnly(parsed)
		}

		report, err := taskgen.ForDate(db, target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"date":    report.Date.Format(dateLayout),
			"created": report.Created,
			"failed":  len(report.Failures),
		})
	}
}
