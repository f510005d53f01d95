package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	AssigneeID  string `json:"assignee_id,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

type TaskData struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  string `json:"assignee_id,omitempty"`
	CreatedBy   string `json:"created_by"`
	DueDate     string `json:"due_date,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type TaskResponse struct {
	Status string   `json:"status"`
	Data   TaskData `json:"data"`
}

type TasksResponse struct {
	Status string `json:"status"`
	Data   struct {
		Tasks []TaskData `json:"tasks"`
	} `json:"data"`
}

type DeletedResponse struct {
	Status string `json:"status"`
	Data   struct {
		Deleted bool `json:"deleted"`
	} `json:"data"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentData struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CommentResponse struct {
	Status string      `json:"status"`
	Data   CommentData `json:"data"`
}

type CommentsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Comments []CommentData `json:"comments"`
	} `json:"data"`
}
