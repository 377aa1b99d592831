package dto

type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
