// This file defines the fixed set of data categories the dashboard tracks.
// Every key is fetched, cached, and refreshed independently of the others.

package dashboard

import "time"

// Key identifies one dashboard data category.
type Key string

const (
	// KeyPoliticians is the assembly member roster.
	KeyPoliticians Key = "politicians"

	// KeyBillScores is the per-politician bill sponsorship tally.
	KeyBillScores Key = "billScores"

	// KeyNews is the aggregated news statistics object.
	KeyNews Key = "news"

	// KeyTrends is the chart-ready trend series.
	KeyTrends Key = "trends"
)

// Keys returns every known key, in a stable order.
// The coordinator iterates this set on every FetchAll.
func Keys() []Key {
	return []Key{KeyPoliticians, KeyBillScores, KeyNews, KeyTrends}
}

// Valid reports whether k is one of the known dashboard keys.
func (k Key) Valid() bool {
	switch k {
	case KeyPoliticians, KeyBillScores, KeyNews, KeyTrends:
		return true
	}
	return false
}

/*
DefaultTTLs maps each key to how long its cached payload stays valid.

The roster and trend series move slowly, so they get the longest TTL.
News statistics churn constantly and get the shortest.
These are defaults; config can override any of them.
*/
func DefaultTTLs() map[Key]time.Duration {
	return map[Key]time.Duration{
		KeyPoliticians: 30 * time.Minute,
		KeyBillScores:  15 * time.Minute,
		KeyNews:        5 * time.Minute,
		KeyTrends:      30 * time.Minute,
	}
}

// EndpointPath returns the backend path serving this key,
// relative to the configured base URL.
func (k Key) EndpointPath() string {
	switch k {
	case KeyPoliticians:
		return "/api/assembly/members"
	case KeyBillScores:
		return "/api/bills/scores"
	case KeyNews:
		return "/api/news/stats"
	case KeyTrends:
		return "/api/trends/chart"
	}
	return ""
}

/*
EmptyValue returns the zero payload a key starts with before its first fetch.

List-shaped keys start as an empty slice and object-shaped keys as an empty
struct, so consumers can render placeholders without nil checks.
*/
func (k Key) EmptyValue() any {
	switch k {
	case KeyPoliticians:
		return []Politician{}
	case KeyBillScores:
		return map[string]BillScore{}
	case KeyNews:
		return NewsStats{}
	case KeyTrends:
		return TrendChart{}
	}
	return nil
}
