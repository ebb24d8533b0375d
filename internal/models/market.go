// Package models defines the canonical market record and its normalization
// from the loosely shaped payloads the Gamma API returns.
package models

import (
	"encoding/json"
	"strconv"
)

// Outcome is one possible resolution of a market. Price is nil when the
// source payload carried no price for it.
type Outcome struct {
	Name  string
	Price *float64
}

// Market is the canonical record every downstream consumer works with.
// All shape variance in the upstream payload is resolved at decode time;
// missing or malformed fields degrade to defaults rather than erroring.
type Market struct {
	ID          string
	Title       string
	Description string
	Category    string
	Slug        string
	Volume      float64
	Closed      bool
	Outcomes    []Outcome
	CreatedTime string
	CloseTime   string
}

// rawMarket mirrors the upstream wire shape. Fields whose encoding varies by
// call site are kept as raw JSON and resolved in normalize.
type rawMarket struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Question      string          `json:"question"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Slug          string          `json:"slug"`
	Volume        json.RawMessage `json:"volume"`
	Closed        bool            `json:"closed"`
	Outcomes      json.RawMessage `json:"outcomes"`
	OutcomePrices json.RawMessage `json:"outcomePrices"`
	CreatedTime   string          `json:"created_time"`
	CloseTime     string          `json:"close_time"`
}

// listEnvelope is the alternative listing shape: {"results": [...]}.
type listEnvelope struct {
	Results []rawMarket `json:"results"`
}

// DecodeMarkets parses a listing payload. Both a bare array and a
// {results: [...]} envelope are accepted.
func DecodeMarkets(data []byte) ([]Market, error) {
	var raws []rawMarket
	if err := json.Unmarshal(data, &raws); err != nil {
		var env listEnvelope
		if err2 := json.Unmarshal(data, &env); err2 != nil {
			return nil, err
		}
		raws = env.Results
	}

	markets := make([]Market, 0, len(raws))
	for _, r := range raws {
		markets = append(markets, normalize(r))
	}
	return markets, nil
}

// DecodeMarket parses a single-record payload.
func DecodeMarket(data []byte) (*Market, error) {
	var raw rawMarket
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := normalize(raw)
	return &m, nil
}

func normalize(r rawMarket) Market {
	title := r.Title
	if title == "" {
		title = r.Question
	}
	if title == "" {
		title = "Untitled Market"
	}

	return Market{
		ID:          r.ID,
		Title:       title,
		Description: r.Description,
		Category:    r.Category,
		Slug:        r.Slug,
		Volume:      parseVolume(r.Volume),
		Closed:      r.Closed,
		Outcomes:    parseOutcomes(r.Outcomes, r.OutcomePrices),
		CreatedTime: r.CreatedTime,
		CloseTime:   r.CloseTime,
	}
}

// parseVolume accepts a JSON number or a numeric string; anything else is 0.
func parseVolume(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// outcomeObject is the detail-endpoint outcome shape.
type outcomeObject struct {
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
}

// parseOutcomes resolves the three observed encodings of the outcomes field:
// a JSON-encoded string of names, an array of names, or an array of
// {name, price} objects. Prices come either inline or from the parallel
// outcomePrices array, paired by index; a missing or misaligned price stays
// nil.
func parseOutcomes(outcomes, outcomePrices json.RawMessage) []Outcome {
	if len(outcomes) == 0 {
		return nil
	}

	// Array of {name, price} objects carries its own prices.
	var objs []outcomeObject
	if err := json.Unmarshal(outcomes, &objs); err == nil && len(objs) > 0 && objs[0].Name != "" {
		result := make([]Outcome, 0, len(objs))
		for _, o := range objs {
			out := Outcome{Name: o.Name}
			if len(o.Price) > 0 {
				p := parseVolume(o.Price)
				out.Price = &p
			}
			result = append(result, out)
		}
		return result
	}

	names := parseStringArray(outcomes)
	if names == nil {
		return nil
	}
	prices := parseStringArray(outcomePrices)

	result := make([]Outcome, 0, len(names))
	for i, name := range names {
		out := Outcome{Name: name}
		if i < len(prices) {
			if p, err := strconv.ParseFloat(prices[i], 64); err == nil {
				out.Price = &p
			}
		}
		result = append(result, out)
	}
	return result
}

// parseStringArray accepts an array of strings or a string containing a JSON
// array. A string that fails to parse as an array becomes a single-element
// list, matching how listing payloads occasionally carry a bare label.
func parseStringArray(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return []string{s}
	}
	return arr
}
