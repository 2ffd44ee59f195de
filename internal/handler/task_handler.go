package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/middleware"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

type TaskHandler struct {
	service          taskqueue.Service
	retentionDefault time.Duration
}

func NewTaskHandler(service taskqueue.Service, retentionDefault time.Duration) *TaskHandler {
	return &TaskHandler{service: service, retentionDefault: retentionDefault}
}

type CreateTaskRequest struct {
	// Field presence is validated by the engine so every violation can be
	// reported in one response.
	Type                string     `json:"type"`
	Source              string     `json:"source"`
	OwnerType           string     `json:"owner_type"`
	Category            string     `json:"category"`
	Priority            string     `json:"priority"`
	AssignedClinicianID string     `json:"assigned_clinician_id"`
	PatientName         string     `json:"patient_name"`
	PatientID           string     `json:"patient_id"`
	EpisodeID           string     `json:"episode_id"`
	Description         string     `json:"description"`
	LetterSubtype       string     `json:"letter_subtype"`
	DueAt               *time.Time `json:"due_at"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type AssignRequest struct {
	ClinicianID string `json:"clinician_id" binding:"required,uuid"`
}

type NoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type TaskResponse struct {
	ID                  string  `json:"id"`
	Type                string  `json:"type"`
	Source              string  `json:"source"`
	OwnerType           string  `json:"owner_type"`
	Category            string  `json:"category"`
	Priority            string  `json:"priority"`
	Status              string  `json:"status"`
	AssignedClinicianID string  `json:"assigned_clinician_id"`
	CreatedBy           string  `json:"created_by"`
	PatientName         string  `json:"patient_name,omitempty"`
	PatientID           string  `json:"patient_id,omitempty"`
	EpisodeID           string  `json:"episode_id,omitempty"`
	Description         string  `json:"description"`
	LetterSubtype       string  `json:"letter_subtype,omitempty"`
	DueAt               string  `json:"due_at"`
	CreatedAt           string  `json:"created_at"`
	StatusChangedAt     string  `json:"status_changed_at"`
	CompletedAt         *string `json:"completed_at,omitempty"`
	CancelledReason     *string `json:"cancelled_reason,omitempty"`
	Overdue             bool    `json:"overdue"`
	DueToday            bool    `json:"due_today"`
	Version             int     `json:"version"`
}

type NoteResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

func toTaskResponse(task *model.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:                  task.ID.String(),
		Type:                string(task.Type),
		Source:              string(task.Source),
		OwnerType:           string(task.OwnerType),
		Category:            string(task.Category),
		Priority:            string(task.Priority),
		Status:              string(task.Status),
		AssignedClinicianID: task.AssignedClinicianID.String(),
		CreatedBy:           task.CreatedBy.String(),
		PatientName:         task.PatientName,
		PatientID:           task.PatientID,
		EpisodeID:           task.EpisodeID,
		Description:         task.Description,
		LetterSubtype:       task.LetterSubtype,
		DueAt:               task.DueAt.Format(time.RFC3339),
		CreatedAt:           task.CreatedAt.Format(time.RFC3339),
		StatusChangedAt:     task.StatusChangedAt.Format(time.RFC3339),
		CancelledReason:     task.CancelledReason,
		Overdue:             taskqueue.IsOverdue(task, now),
		DueToday:            taskqueue.IsDueToday(task, now),
		Version:             task.Version,
	}
	if task.CompletedAt != nil {
		completed := task.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

func toNoteResponses(notes []model.TaskNote) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = NoteResponse{
			ID:        n.ID.String(),
			TaskID:    n.TaskID.String(),
			AuthorID:  n.AuthorID.String(),
			Note:      n.Note,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}

// respondServiceError maps engine errors onto HTTP statuses. StaleWrite gets
// a retry hint so the UI can refetch and reapply.
func respondServiceError(c *gin.Context, err error) {
	var verr *taskqueue.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "violations": verr.Violations})
	case errors.Is(err, taskqueue.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, taskqueue.ErrMissingCancelReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cancelling a task requires a reason"})
	case errors.Is(err, taskqueue.ErrEmptyNote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Note text must not be empty"})
	case errors.Is(err, taskqueue.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid status transition"})
	case errors.Is(err, taskqueue.ErrTerminalTaskImmutable):
		c.JSON(http.StatusConflict, gin.H{"error": "Task is closed and cannot be modified"})
	case errors.Is(err, taskqueue.ErrStaleWrite):
		c.JSON(http.StatusConflict, gin.H{"error": "This task changed, please retry", "retry": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func authenticatedUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := raw.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input := taskqueue.CreateTaskInput{
		Type:        model.TaskType(req.Type),
		Source:      model.TaskSource(req.Source),
		OwnerType:   model.OwnerType(req.OwnerType),
		Category:    model.TaskCategory(req.Category),
		Priority:    model.TaskPriority(req.Priority),
		CreatedBy:   userID,
		PatientName: req.PatientName,
		PatientID:   req.PatientID,
		EpisodeID:   req.EpisodeID,
		Description: req.Description,

		LetterSubtype: req.LetterSubtype,
	}
	if req.DueAt != nil {
		input.DueAt = *req.DueAt
	}
	// An unparseable clinician id surfaces as the same validation violation
	// as a missing one.
	if req.AssignedClinicianID != "" {
		if id, err := uuid.Parse(req.AssignedClinicianID); err == nil {
			input.AssignedClinicianID = id
		}
	}

	task, err := h.service.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task, time.Now()))
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}

// GET /tasks
//
// Query parameters: quick (all|overdue|today|week), type, status, owner_type,
// clinician_id, retention_days, and an optional RFC3339 now for deterministic
// replay of a queue view.
func (h *TaskHandler) List(c *gin.Context) {
	filter := taskqueue.QueueFilter{
		Quick:     taskqueue.QuickAll,
		Retention: h.retentionDefault,
	}

	if quick := c.Query("quick"); quick != "" {
		qf := taskqueue.QuickFilter(quick)
		if !qf.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quick filter"})
			return
		}
		filter.Quick = qf
	}
	if raw := c.Query("type"); raw != "" {
		taskType := model.TaskType(raw)
		if !taskType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task type"})
			return
		}
		filter.Type = &taskType
	}
	if raw := c.Query("status"); raw != "" {
		status := model.TaskStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("owner_type"); raw != "" {
		ownerType := model.OwnerType(raw)
		if !ownerType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner type"})
			return
		}
		filter.OwnerType = &ownerType
	}
	if raw := c.Query("clinician_id"); raw != "" {
		clinicianID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid clinician ID format"})
			return
		}
		filter.ClinicianID = &clinicianID
	}
	if raw := c.Query("retention_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid retention_days"})
			return
		}
		filter.Retention = time.Duration(days) * 24 * time.Hour
	}

	now := time.Now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid now timestamp"})
			return
		}
		now = parsed
	}

	tasks, err := h.service.ListQueue(c.Request.Context(), filter, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i], now)
	}
	c.JSON(http.StatusOK, response)
}

// POST /tasks/:id/status
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.service.ChangeStatus(c.Request.Context(), id, model.TaskStatus(req.Status), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}

// POST /tasks/:id/assign
func (h *TaskHandler) Assign(c *gin.Context) {
	if _, ok := authenticatedUserID(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	clinicianID, err := uuid.Parse(req.ClinicianID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid clinician ID format"})
		return
	}

	task, err := h.service.Reassign(c.Request.Context(), id, clinicianID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task, time.Now()))
}

// POST /tasks/:id/notes
func (h *TaskHandler) AddNote(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	notes, err := h.service.AddNote(c.Request.Context(), id, userID, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toNoteResponses(notes))
}

// GET /tasks/:id/notes
func (h *TaskHandler) GetNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	notes, err := h.service.NotesForTask(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNoteResponses(notes))
}
