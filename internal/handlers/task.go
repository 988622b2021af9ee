package handlers

import (
	"net/http"
	"strconv"

	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	Description string `json:"description" binding:"required"`
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /tasks [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	var input createTaskRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := currentUser(c)
	task, err := h.services.Tasks.Create(c.Request.Context(), user.ID, input.Description)
	if err != nil {
		h.respondError(c, err, "task_create_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Param        completed  query  bool    false  "Filter by completion"
// @Param        limit      query  int     false  "Page size"
// @Param        skip       query  int     false  "Offset"
// @Param        sortBy     query  string  false  "field:direction, e.g. created_at:desc"
// @Success      200  {object}  map[string]interface{}  "count, tasks"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /tasks [get]
// @Security     BearerAuth
func (h *Handler) listTasks(c *gin.Context) {
	filter, ok := h.parseTaskFilter(c)
	if !ok {
		return
	}

	user := currentUser(c)
	tasks, err := h.services.Tasks.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		h.respondError(c, err, "task_list_failed", "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// @Summary      Get task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
// @Security     BearerAuth
func (h *Handler) getTask(c *gin.Context) {
	user := currentUser(c)
	task, err := h.services.Tasks.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "task_get_failed", "user_id", user.ID, "task_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Update task
// @Description  Whitelisted fields: description, completed. Any other field fails the whole update.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	user := currentUser(c)

	rawBody, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read request body"})
		return
	}

	task, err := h.services.Tasks.Update(c.Request.Context(), user.ID, c.Param("id"), rawBody)
	if err != nil {
		h.respondError(c, err, "task_update_failed", "user_id", user.ID, "task_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, task)
}

// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  models.Task
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	user := currentUser(c)
	task, err := h.services.Tasks.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "task_delete_failed", "user_id", user.ID, "task_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, task)
}

// parseTaskFilter reads the listing query params, answering 400 itself on
// malformed values.
func (h *Handler) parseTaskFilter(c *gin.Context) (service.TaskFilter, bool) {
	var filter service.TaskFilter

	if qs := c.Query("completed"); qs != "" {
		completed, err := strconv.ParseBool(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'completed' must be true or false"})
			return filter, false
		}
		filter.Completed = &completed
	}
	if qs := c.Query("limit"); qs != "" {
		limit, err := strconv.Atoi(qs)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'limit' must be a non-negative integer"})
			return filter, false
		}
		filter.Limit = limit
	}
	if qs := c.Query("skip"); qs != "" {
		skip, err := strconv.Atoi(qs)
		if err != nil || skip < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'skip' must be a non-negative integer"})
			return filter, false
		}
		filter.Skip = skip
	}
	filter.SortBy = c.Query("sortBy")

	return filter, true
}
