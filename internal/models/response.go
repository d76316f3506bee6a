package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HistoryPoint is one aggregated period of historical sales.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

// ForecastStep is a single predicted period with its confidence bounds.
type ForecastStep struct {
	Date     string  `json:"date"`
	Forecast float64 `json:"forecast"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
}

// ForecastResponse represents the forecast response. FinalPrediction, Date,
// LowConf and HighConf repeat the last step for clients that only want the
// end of the horizon.
type ForecastResponse struct {
	ProductID       string         `json:"product_id"`
	Granularity     string         `json:"granularity"`
	History         []HistoryPoint `json:"history"`
	Forecasts       []ForecastStep `json:"forecasts"`
	FinalPrediction float64        `json:"final_prediction"`
	Date            string         `json:"date"`
	LowConf         float64        `json:"low_conf"`
	HighConf        float64        `json:"high_conf"`
	Warnings        []string       `json:"warnings,omitempty"`
}

// ProductResponse represents one product with its most recent sale date
type ProductResponse struct {
	ProductID    string `json:"product_id"`
	LastSaleDate string `json:"last_sale_date"`
}

// ProductListResponse represents list products response
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
}

// SalesWriteResponse represents the acknowledgement for queued sales writes
type SalesWriteResponse struct {
	Status    string `json:"status"`
	ProductID string `json:"product_id"`
	Accepted  int    `json:"accepted"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
