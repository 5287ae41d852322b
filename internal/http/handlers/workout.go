package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pactfit/pactfit-backend/internal/http/response"
	"github.com/pactfit/pactfit-backend/internal/services"
)

type WorkoutHandler struct {
	workoutService services.WorkoutService
}

func NewWorkoutHandler(workoutService services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

func (wh *WorkoutHandler) Toggle(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	completed, err := wh.workoutService.ToggleWorkout(c.Request.Context(), id, req.Date)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "toggle_workout_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"date": req.Date, "completed": completed})
}

func (wh *WorkoutHandler) Calendar(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	cal, err := wh.workoutService.GetCalendar(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "get_calendar_failed", err)
		return
	}
	response.RespondOK(c, cal)
}

func (wh *WorkoutHandler) ScheduledDay(c *gin.Context) {
	id, ok := contractID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	scheduled, err := wh.workoutService.IsScheduledDay(c.Request.Context(), id, date)
	if err != nil {
		response.RespondError(c, statusFor(err, http.StatusInternalServerError), "scheduled_day_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"date": date, "scheduled": scheduled})
}
