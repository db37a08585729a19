package models

// FailureEnvelope is the JSON body for every failed request.
type FailureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// DataEnvelope is the JSON body for a successful request carrying a payload.
type DataEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// MessageEnvelope is the JSON body for a successful request with no payload.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListEnvelope is the JSON body for paginated collections. Count is the
// number of items on this page, Total the number across all pages and Pages
// the page count at the requested limit.
type ListEnvelope struct {
	Success bool  `json:"success"`
	Count   int   `json:"count"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Data    any   `json:"data"`
}

// ToggleEnvelope is the JSON body returned by like toggles.
type ToggleEnvelope struct {
	Success    bool `json:"success"`
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
	Data       any  `json:"data,omitempty"`
}

// SaveEnvelope is the JSON body returned by the save toggle.
type SaveEnvelope struct {
	Success bool   `json:"success"`
	Saved   bool   `json:"saved"`
	Message string `json:"message"`
}

// NewListEnvelope builds the paginated envelope; pages is ceil(total/limit).
func NewListEnvelope(count int, total int64, limit int, data any) ListEnvelope {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return ListEnvelope{
		Success: true,
		Count:   count,
		Total:   total,
		Pages:   pages,
		Data:    data,
	}
}
