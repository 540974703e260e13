package models

import "time"

// HistoryPoint is one day of observed demand, normalized to a UTC calendar day.
type HistoryPoint struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// ForecastPoint is one day of predicted demand, rounded to 2 decimals.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
}

// Prediction is the stored demand forecast for a single product. Exactly one
// record exists per product; each successful computation replaces it wholesale.
type Prediction struct {
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	History            []HistoryPoint  `json:"history"`
	Forecast           []ForecastPoint `json:"forecast"`
	PredictedTotal     float64         `json:"predictedTotal"`
	Confidence         float64         `json:"confidence"`
	RecommendedReorder int             `json:"recommendedReorder"`
	Method             string          `json:"method"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// BatchError records why one product failed during a batch sweep.
type BatchError struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Error       string `json:"error"`
}

// BatchSummary is the result of one full prediction sweep over the catalog.
type BatchSummary struct {
	TotalProducts int          `json:"totalProducts"`
	Successful    int          `json:"successful"`
	Failed        int          `json:"failed"`
	Errors        []BatchError `json:"errors,omitempty"`
}
