package dto

type AttachmentDTO struct {
	FileID      string `json:"file_id" example:"BQACAgIAAxkBAAIB"`
	FileName    string `json:"file_name" example:"plan.docx"`
	ContentType string `json:"content_type" example:"application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
	Size        int64  `json:"size" example:"48213"`
}

// ChatEventRequestDTO is one user message relayed by the messaging gateway.
type ChatEventRequestDTO struct {
	UserID     int64          `json:"user_id" example:"7"`
	Text       string         `json:"text,omitempty" example:"/order"`
	Attachment *AttachmentDTO `json:"attachment,omitempty"`
}

type ChatReplyDTO struct {
	Messages  []string `json:"messages" example:"Choose the type of work:"`
	Choices   []string `json:"choices,omitempty" example:"Курсова робота"`
	Step      string   `json:"step" example:"choosing_type"`
	Price     int64    `json:"price,omitempty" example:"2500"`
	Discount  int64    `json:"discount,omitempty" example:"250"`
	OrderID   string   `json:"order_id,omitempty" example:"2404815702"`
	ErrorCode string   `json:"error_code,omitempty" example:"validation"`
}
