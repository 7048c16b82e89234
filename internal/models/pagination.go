package models

// PaginatedResponse is the envelope for the product and order listing
// endpoints. Total counts all matching rows, not just the returned page.
type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}
