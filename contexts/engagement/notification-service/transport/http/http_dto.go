package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NotificationData struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

type NotificationsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Notifications []NotificationData `json:"notifications"`
	} `json:"data"`
}

type MarkReadResponse struct {
	Status string           `json:"status"`
	Data   NotificationData `json:"data"`
}
