package services

import (
	"math"
	"testing"
)

func activities(tips []FarmingTip) []string {
	out := make([]string, len(tips))
	for i, tip := range tips {
		out[i] = tip.Activity
	}
	return out
}

func TestAdvisoryTips(t *testing.T) {
	cases := []struct {
		name string
		req  AdvisoryRequest
		want []string
	}{
		{
			name: "mild dry day",
			req:  AdvisoryRequest{Current: WeatherReading{TempC: 22, Humidity: 70, Condition: "Clear", WindSpeed: 3}},
			want: []string{"Planting"},
		},
		{
			name: "raining now",
			req:  AdvisoryRequest{Current: WeatherReading{TempC: 22, Humidity: 90, Condition: "Light Rain", WindSpeed: 3}},
			want: []string{"Spraying", "Drainage"},
		},
		{
			name: "rain expected within window",
			req: AdvisoryRequest{
				Current:  WeatherReading{TempC: 30, Humidity: 40, Condition: "Clouds", WindSpeed: 20},
				Forecast: []ForecastSlot{{Pop: 0.1}, {Pop: 0.7}},
			},
			want: []string{"Spraying", "Drainage", "Irrigation", "Protection"},
		},
		{
			name: "rain beyond window ignored",
			req: AdvisoryRequest{
				Current:  WeatherReading{TempC: 18, Humidity: 50, Condition: "Clear"},
				Forecast: []ForecastSlot{{}, {}, {}, {}, {}, {}, {}, {}, {Pop: 0.9}},
			},
			want: []string{},
		},
	}
	svc := AdvisoryService{}
	for _, tc := range cases {
		tips, err := svc.Tips(tc.req)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		got := activities(tips)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestAdvisoryRejectsNaN(t *testing.T) {
	_, err := AdvisoryService{}.Tips(AdvisoryRequest{Current: WeatherReading{TempC: math.NaN()}})
	if err == nil {
		t.Fatalf("expected error for NaN reading")
	}
}
