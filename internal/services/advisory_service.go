package services

import (
	"math"
	"strings"

	"agrisolve/internal/domain"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// forecastWindow is how many forecast slots count as "soon" (3h slots, one day).
const forecastWindow = 8

// WeatherReading is the current conditions as reported by the caller's provider.
type WeatherReading struct {
	TempC     float64 `json:"temp"`
	Humidity  float64 `json:"humidity"`
	Condition string  `json:"condition"`
	WindSpeed float64 `json:"wind_speed"`
}

// ForecastSlot carries the probability of precipitation for one slot.
type ForecastSlot struct {
	Pop float64 `json:"pop"`
}

type AdvisoryRequest struct {
	Current  WeatherReading `json:"current"`
	Forecast []ForecastSlot `json:"forecast"`
}

type FarmingTip struct {
	Activity       string  `json:"activity"`
	Recommendation string  `json:"recommendation"`
	Urgency        Urgency `json:"urgency"`
}

type AdvisoryService struct{}

func (AdvisoryService) Tips(req AdvisoryRequest) ([]FarmingTip, error) {
	cur := req.Current
	for _, v := range []float64{cur.TempC, cur.Humidity, cur.WindSpeed} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, domain.ValidationError{Field: "current", Msg: "weather reading must be numeric"}
		}
	}

	raining := strings.Contains(strings.ToLower(cur.Condition), "rain")
	rainSoon := false
	for i, slot := range req.Forecast {
		if i >= forecastWindow {
			break
		}
		if slot.Pop > 0.6 {
			rainSoon = true
			break
		}
	}

	tips := []FarmingTip{}
	if raining || rainSoon {
		tips = append(tips,
			FarmingTip{"Spraying", "Avoid spraying pesticides due to expected rain", UrgencyMedium},
			FarmingTip{"Drainage", "Check and clear drainage channels", UrgencyHigh},
		)
	}
	if cur.TempC > 25 && cur.Humidity < 60 {
		tips = append(tips, FarmingTip{"Irrigation", "Consider watering crops due to hot, dry conditions", UrgencyHigh})
	}
	if cur.TempC >= 20 && cur.TempC <= 25 && !raining {
		tips = append(tips, FarmingTip{"Planting", "Excellent weather conditions for planting", UrgencyHigh})
	}
	if cur.WindSpeed > 15 {
		tips = append(tips, FarmingTip{"Protection", "Secure young plants and structures due to strong winds", UrgencyMedium})
	}
	return tips, nil
}
