package dto

// Response is the JSON envelope of every endpoint. Exactly one of Data,
// Message or Error is normally set; Meta accompanies paged lists.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail names one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes the page a list response holds
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Info is a success carrying only a human-readable message
func Info(message string) Response {
	return Response{Success: true, Message: message}
}

// Page wraps one page of a list together with its paging metadata
func Page(data any, total int64, page, pageSize int) Response {
	return Response{Success: true, Data: data, Meta: newMeta(total, page, pageSize)}
}

// Fail builds an error envelope; see GetHTTPStatus for the matching status.
func Fail(code, message string) Response {
	return Response{Error: &ErrorInfo{Code: code, Message: message}}
}

// Invalid is a VALIDATION_ERROR listing every rejected field
func Invalid(message string, details ...ValidationDetail) Response {
	r := Fail(ErrCodeValidation, message)
	r.Error.Details = details
	return r
}

// WithRequestID tags an error envelope so clients can quote it in reports.
// Success envelopes are returned unchanged.
func (r Response) WithRequestID(id string) Response {
	if r.Error != nil {
		info := *r.Error
		info.RequestID = id
		r.Error = &info
	}
	return r
}

func newMeta(total int64, page, pageSize int) *Meta {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	return &Meta{Total: total, Page: page, PageSize: pageSize, TotalPages: int(pages)}
}
