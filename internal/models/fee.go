package models

// OrderClass affects only the fixed base component of distance-tier pricing.
type OrderClass string

const (
	OrderClassRegular OrderClass = "regular"
	OrderClassBulk    OrderClass = "bulk"
)

// Valid reports whether the class is one of the known order classes.
func (c OrderClass) Valid() bool {
	return c == OrderClassRegular || c == OrderClassBulk
}

// FeeSource distinguishes an authoritative remote computation from the local
// estimate used when the backend is unreachable.
type FeeSource string

const (
	SourceRemote   FeeSource = "remote"
	SourceFallback FeeSource = "fallback"
)

// DeliveryFactors are the inputs that went into a fee computation.
type DeliveryFactors struct {
	DistanceKm    float64    `json:"distance_km"`
	IsNightWindow bool       `json:"is_night_window"`
	IsRainy       bool       `json:"is_rainy"`
	OrderClass    OrderClass `json:"order_class"`
}

// FeeBreakdown is a transient per-request fee quote. It is never persisted.
//
// Total always equals DistanceFee + TimeSurcharge + WeatherSurcharge. A
// fallback breakdown may understate the true cost since no weather data was
// reachable; callers must present it as an estimate.
type FeeBreakdown struct {
	BaseFee          float64         `json:"base_fee"`
	DistanceFee      float64         `json:"distance_fee"`
	TimeSurcharge    float64         `json:"time_surcharge"`
	WeatherSurcharge float64         `json:"weather_surcharge"`
	Total            float64         `json:"total"`
	Currency         string          `json:"currency"`
	Source           FeeSource       `json:"source"`
	Factors          DeliveryFactors `json:"factors"`
}
