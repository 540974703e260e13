package forecast

import (
	"math"

	"app/models"
)

// MinHistoryDays is the minimum daily history length required before a
// prediction may be computed.
const MinHistoryDays = 7

// Method identifies the forecasting algorithm on stored predictions.
const Method = "moving-average-trend"

// Params are the tuning parameters of the forecasting model. The defaults
// match the values the downstream confidence and reorder consumers are tuned
// to; override them only with care.
type Params struct {
	// Horizon is the number of future days to forecast.
	Horizon int
	// Window is the trailing window length for the moving average.
	Window int
	// TrendWeight and AverageWeight blend the trend extrapolation with the
	// moving average.
	TrendWeight   float64
	AverageWeight float64
	// SafetyFactor is the fraction of predicted demand added as safety stock
	// when computing a reorder recommendation.
	SafetyFactor float64
	// ConfidenceSlope and ConfidenceFloor shape the volatility-to-confidence
	// mapping: confidence = clamp(1 - slope*cv, floor, 1).
	ConfidenceSlope float64
	ConfidenceFloor float64
}

// DefaultParams returns the standard model parameters.
func DefaultParams() Params {
	return Params{
		Horizon:         30,
		Window:          30,
		TrendWeight:     0.6,
		AverageWeight:   0.4,
		SafetyFactor:    0.2,
		ConfidenceSlope: 0.7,
		ConfidenceFloor: 0.3,
	}
}

// movingAverage returns the mean of the last min(window, len) quantities.
func movingAverage(quantities []float64, window int) float64 {
	n := len(quantities)
	if n == 0 {
		return 0
	}
	if window > n {
		window = n
	}
	sum := 0.0
	for _, q := range quantities[n-window:] {
		sum += q
	}
	return sum / float64(window)
}

// linearTrend fits quantity against 0-based day index by ordinary least
// squares and returns the slope and intercept.
func linearTrend(quantities []float64) (slope, intercept float64) {
	n := float64(len(quantities))
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, q := range quantities {
		x := float64(i)
		sumX += x
		sumY += q
		sumXY += x * q
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// Forecast produces one ForecastPoint per day for p.Horizon consecutive days
// starting the day after the last historical day. Each value is
// max(0, TrendWeight*trend + AverageWeight*movingAverage), rounded to 2
// decimals. The trend is extrapolated at future day indices continuing the
// history's 0-based indexing. Given identical history the output is
// bit-identical across calls.
func Forecast(history []models.HistoryPoint, p Params) []models.ForecastPoint {
	if len(history) == 0 {
		return []models.ForecastPoint{}
	}

	quantities := make([]float64, len(history))
	for i, h := range history {
		quantities[i] = float64(h.Quantity)
	}

	avg := movingAverage(quantities, p.Window)
	slope, intercept := linearTrend(quantities)

	lastDate := history[len(history)-1].Date
	points := make([]models.ForecastPoint, 0, p.Horizon)
	for i := 1; i <= p.Horizon; i++ {
		trend := slope*float64(len(history)+i-1) + intercept
		predicted := math.Max(0, p.TrendWeight*trend+p.AverageWeight*avg)
		points = append(points, models.ForecastPoint{
			Date:      lastDate.AddDate(0, 0, i),
			Predicted: round2(predicted),
		})
	}
	return points
}

// Confidence derives a demand-stability score in [ConfidenceFloor, 1] from
// the coefficient of variation of the daily quantities. A mean of zero yields
// a fixed neutral 0.5. The score measures historical volatility only, never
// forecast accuracy.
func Confidence(history []models.HistoryPoint, p Params) float64 {
	if len(history) == 0 {
		return 0
	}

	n := float64(len(history))
	mean := 0.0
	for _, h := range history {
		mean += float64(h.Quantity)
	}
	mean /= n

	if mean == 0 {
		return 0.5
	}

	variance := 0.0
	for _, h := range history {
		d := float64(h.Quantity) - mean
		variance += d * d
	}
	variance /= n
	cv := math.Sqrt(variance) / mean

	confidence := math.Max(p.ConfidenceFloor, math.Min(1.0, 1.0-cv*p.ConfidenceSlope))
	return round2(confidence)
}

// ReorderQuantity recommends how much stock to order to cover the predicted
// demand plus a safety buffer. Zero means current stock already covers the
// horizon plus the buffer.
func ReorderQuantity(predictedTotal float64, currentStock int, safetyFactor float64) int {
	safetyStock := predictedTotal * safetyFactor
	reorder := predictedTotal - float64(currentStock) + safetyStock
	return int(math.Max(0, math.Round(reorder)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
