package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const navDateLayout = "2006-01-02"

type NavSample struct {
	Date time.Time `json:"date"`
	Nav  float64   `json:"nav"`
}

type navSampleJSON struct {
	Date string  `json:"date"`
	Nav  float64 `json:"nav"`
}

// MarshalJSON writes the date as YYYY-MM-DD.
func (s NavSample) MarshalJSON() ([]byte, error) {
	return json.Marshal(navSampleJSON{Date: s.Date.Format(navDateLayout), Nav: s.Nav})
}

// UnmarshalJSON accepts YYYY-MM-DD or a full RFC3339 timestamp.
func (s *NavSample) UnmarshalJSON(data []byte) error {
	var raw navSampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := ParseNavDate(raw.Date)
	if err != nil {
		return err
	}
	s.Date = date
	s.Nav = raw.Nav
	return nil
}

// EncodeMsgpack keeps the date's offset, which the default time encoding
// drops on decode.
func (s NavSample) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeString(s.Date.Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return enc.EncodeFloat64(s.Nav)
}

func (s *NavSample) DecodeMsgpack(dec *msgpack.Decoder) error {
	raw, err := dec.DecodeString()
	if err != nil {
		return err
	}
	date, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	nav, err := dec.DecodeFloat64()
	if err != nil {
		return err
	}
	s.Date = date
	s.Nav = nav
	return nil
}

func ParseNavDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(navDateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid nav date %q", value)
	}
	return t, nil
}

// PlotPoint is a pixel coordinate with the origin at the top-left corner.
type PlotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Period string

const (
	Period1M Period = "1M"
	Period3M Period = "3M"
	Period6M Period = "6M"
	Period1Y Period = "1Y"
	Period3Y Period = "3Y"
	Period5Y Period = "5Y"
)

var periodMonths = map[Period]int{
	Period1M: 1,
	Period3M: 3,
	Period6M: 6,
	Period1Y: 12,
	Period3Y: 36,
	Period5Y: 60,
}

// Periods lists every period in ascending length.
func Periods() []Period {
	return []Period{Period1M, Period3M, Period6M, Period1Y, Period3Y, Period5Y}
}

// Months is the trailing sample count for the period, 0 when unknown.
func (p Period) Months() int {
	return periodMonths[p]
}

func (p Period) Valid() bool {
	_, ok := periodMonths[p]
	return ok
}

func ParsePeriod(value string) (Period, bool) {
	p := Period(strings.ToUpper(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

type WindowResult struct {
	Points []PlotPoint `json:"points"`
	Min    float64     `json:"min"`
	Max    float64     `json:"max"`
	Sliced []NavSample `json:"sliced"`
}

type SeriesStats struct {
	Volatility  float64 `json:"volatility"`   // annualised, from monthly returns
	MaxDrawdown float64 `json:"max_drawdown"` // 0.25 = 25% below the running peak
}

// NavChart is everything the NAV graph needs for one period.
type NavChart struct {
	SchemeCode   string       `json:"scheme_code"`
	Period       Period       `json:"period"`
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
	Window       WindowResult `json:"window"`
	PeriodReturn float64      `json:"period_return"`
	Latest       *NavSample   `json:"latest,omitempty"`
	Stats        SeriesStats  `json:"stats"`
}
