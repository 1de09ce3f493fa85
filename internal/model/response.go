package model

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CountResponse struct {
	TotalEntries int64 `json:"total_entries"`
}

type StreakResponse struct {
	Streak int `json:"streak"`
}

type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=0"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

type SearchQuery struct {
	PageQuery
	Query string `form:"query" binding:"required"`
}

type DateRangeQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

type RecentQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}

type TrendQuery struct {
	Days    int    `form:"days" binding:"omitempty,min=1"`
	GroupBy string `form:"group_by" binding:"omitempty,oneof=day week month"`
}

type DistributionQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=week month year all"`
}
