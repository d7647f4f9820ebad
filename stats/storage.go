package stats

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Outcome classifies a finished analysis request
type Outcome string

const (
	Succeeded  Outcome = "succeeded"
	Unparsable Outcome = "unparsable"
	Rejected   Outcome = "rejected"
	Failed     Outcome = "failed"
)

// MonthlyStats represents statistics for a specific month
type MonthlyStats struct {
	Requests       int            `json:"requests"`
	Succeeded      int            `json:"succeeded"`
	Unparsable     int            `json:"unparsable"`
	Rejected       int            `json:"rejected"`
	Failed         int            `json:"failed"`
	TotalLatencyMs int64          `json:"-"`
	AverageLatency float64        `json:"averageLatencyMs"`
	PopularURLs    map[string]int `json:"-"`
	LastUpdated    time.Time      `json:"lastUpdated"`
}

// ErrorRate returns the share of failed requests as a percentage
func (m MonthlyStats) ErrorRate() float64 {
	if m.Requests == 0 {
		return 0
	}
	return float64(m.Failed) / float64(m.Requests) * 100
}

// URLCount is a cleaned URL and how often it was analyzed
type URLCount struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// Storage keeps request statistics in memory, keyed by month. Nothing is persisted.
type Storage struct {
	mutex sync.RWMutex
	stats map[string]*MonthlyStats // key: "YYYY-MM"
	now   func() time.Time
}

// NewStorage creates an empty statistics storage
func NewStorage() *Storage {
	return &Storage{
		stats: make(map[string]*MonthlyStats),
		now:   time.Now,
	}
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// cleanURL keeps scheme, host and path. Query strings and fragments are dropped.
func cleanURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}

	cleaned := strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
	if u.Path != "" && u.Path != "/" {
		cleaned += u.Path
	}
	return strings.TrimSuffix(cleaned, "/")
}

// Record adds one finished analysis request for rawURL
func (s *Storage) Record(rawURL string, outcome Outcome, latency time.Duration) {
	now := s.now()
	month := monthKey(now)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{PopularURLs: make(map[string]int)}
		s.stats[month] = stats
	}

	stats.Requests++
	switch outcome {
	case Succeeded:
		stats.Succeeded++
	case Unparsable:
		stats.Unparsable++
	case Rejected:
		stats.Rejected++
	case Failed:
		stats.Failed++
	}

	if outcome != Rejected {
		if cleaned := cleanURL(rawURL); cleaned != "" {
			stats.PopularURLs[cleaned]++
		}
	}

	stats.TotalLatencyMs += latency.Milliseconds()
	stats.AverageLatency = float64(stats.TotalLatencyMs) / float64(stats.Requests)
	stats.LastUpdated = now
}

func (s *Storage) snapshot(month string) (MonthlyStats, bool) {
	stats, exists := s.stats[month]
	if !exists {
		return MonthlyStats{}, false
	}
	out := *stats
	out.PopularURLs = make(map[string]int, len(stats.PopularURLs))
	for k, v := range stats.PopularURLs {
		out.PopularURLs[k] = v
	}
	return out, true
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats, _ := s.snapshot(monthKey(s.now()))
	return stats
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.snapshot(yearMonth)
}

// GetAllMonths returns all months that have statistics, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// TopURLs returns the n most analyzed URLs of the current month
func (s *Storage) TopURLs(n int) []URLCount {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stats, exists := s.stats[monthKey(s.now())]
	if !exists || n <= 0 {
		return []URLCount{}
	}

	counts := make([]URLCount, 0, len(stats.PopularURLs))
	for u, c := range stats.PopularURLs {
		counts = append(counts, URLCount{URL: u, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].URL < counts[j].URL
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Cleanup drops everything except the current and previous month
func (s *Storage) Cleanup() {
	now := s.now()
	current := monthKey(now)
	previous := monthKey(time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location()))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for key := range s.stats {
		if key != current && key != previous {
			delete(s.stats, key)
		}
	}
}
