// Package activity fetches wearable activity metrics and renders them for the
// dashboard widget. Fetch failures never reach the user: they are logged and
// the widget keeps its placeholder text.
package activity

import (
	"errors"
	"fmt"
	"time"
)

// ErrContract is returned when a payload violates the endpoint contract.
var ErrContract = errors.New("activity: payload violates contract")

// DateLayout is the format of Weekly.Dates.
const DateLayout = "2006-01-02"

// Today is the snapshot returned by the today endpoint.
type Today struct {
	Steps        int `json:"steps"`
	Calories     int `json:"calories"`
	SleepMinutes int `json:"sleep_minutes"`
	HeartRate    int `json:"heart_rate,omitempty"`
}

// Validate checks that every metric is non-negative.
func (t Today) Validate() error {
	for name, v := range map[string]int{
		"steps": t.Steps, "calories": t.Calories, "sleep_minutes": t.SleepMinutes, "heart_rate": t.HeartRate,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrContract, name, v)
		}
	}
	return nil
}

// Weekly is the series returned by the weekly endpoint, oldest day first.
type Weekly struct {
	Dates    []string `json:"dates"`
	Steps    []int    `json:"steps"`
	Calories []int    `json:"calories"`
}

// Validate checks equal lengths, non-negative values and parseable dates.
func (w Weekly) Validate() error {
	if len(w.Steps) != len(w.Dates) || len(w.Calories) != len(w.Dates) {
		return fmt.Errorf("%w: %d dates, %d steps, %d calories",
			ErrContract, len(w.Dates), len(w.Steps), len(w.Calories))
	}
	for i, d := range w.Dates {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("%w: date %q", ErrContract, d)
		}
		if w.Steps[i] < 0 || w.Calories[i] < 0 {
			return fmt.Errorf("%w: negative value on %s", ErrContract, d)
		}
	}
	return nil
}

// Point is one day of the weekly chart.
type Point struct {
	Date     string `json:"date"`
	Steps    int    `json:"steps"`
	Calories int    `json:"calories"`
}

// Points zips the series into chart points.
func (w Weekly) Points() []Point {
	out := make([]Point, len(w.Dates))
	for i, d := range w.Dates {
		out[i] = Point{Date: d, Steps: w.Steps[i], Calories: w.Calories[i]}
	}
	return out
}
