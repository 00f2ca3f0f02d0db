package dashboard

import (
	"encoding/json"
	"fmt"
)

// Politician is one assembly member in the roster payload.
type Politician struct {
	Name      string `json:"name"`
	Party     string `json:"party"`
	District  string `json:"district"`
	Committee string `json:"committee"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// BillScore is the sponsorship tally for one politician,
// keyed by the politician's name in the billScores payload.
type BillScore struct {
	MainProposals int `json:"main_proposals"`
	CoProposals   int `json:"co_proposals"`
	TotalBills    int `json:"total_bills"`
}

// NewsStats is the aggregated news statistics payload. The backend owns the
// sentiment computation; this is just its precomputed output.
type NewsStats struct {
	TotalArticles int            `json:"total_articles"`
	PositiveRatio float64        `json:"positive_ratio"`
	NegativeRatio float64        `json:"negative_ratio"`
	NeutralRatio  float64        `json:"neutral_ratio"`
	TopKeywords   []KeywordCount `json:"top_keywords,omitempty"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}

// KeywordCount is one entry of the news keyword ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// TrendChart is the chart-ready trend payload: shared x-axis labels
// plus one series of points per tracked topic.
type TrendChart struct {
	Labels []string      `json:"labels"`
	Series []TrendSeries `json:"series"`
}

// TrendSeries is one named line of a trend chart.
type TrendSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

/*
Decode turns the raw "data" field of a backend envelope into the typed payload
for the given key.

Each key has a fixed payload shape; an envelope whose data does not match that
shape is a decode failure, which the coordinator surfaces the same way as any
other fetch failure for the key.
*/
func Decode(key Key, raw json.RawMessage) (any, error) {
	switch key {
	case KeyPoliticians:
		var v []Politician
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", key, err)
		}
		return v, nil
	case KeyBillScores:
		var v map[string]BillScore
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", key, err)
		}
		return v, nil
	case KeyNews:
		var v NewsStats
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", key, err)
		}
		return v, nil
	case KeyTrends:
		var v TrendChart
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", key, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown dashboard key %q", key)
}
