package forecast

import "errors"

var (
	// ErrProductNotFound means the supplied product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientHistory means the product has fewer than MinHistoryDays
	// days of order history. It self-resolves as more orders accumulate.
	ErrInsufficientHistory = errors.New("insufficient historical data for prediction: minimum 7 days required")

	// ErrPredictionNotFound means no prediction has been computed for the
	// product yet.
	ErrPredictionNotFound = errors.New("no prediction found for this product")
)

// StoreError wraps an I/O failure while reading or writing stored predictions.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "prediction store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
