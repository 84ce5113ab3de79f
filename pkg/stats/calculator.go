// Package stats computes the supervisor-side ridership aggregates. Totals
// are always recomputed from the committed station logs of each record -
// stored totals are never trusted, so a corrected record can never leave a
// stale aggregate behind.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/mission"
	"github.com/sourcegraph/conc/pool"
)

type RouteTotals struct {
	Route string `json:"route" groups:"basic"`

	Missions     int `json:"missions" groups:"basic"`
	BoardedPax   int `json:"boardedPax" groups:"basic"`
	BoardedBikes int `json:"boardedBikes" groups:"basic"`
}

type DayTotals struct {
	Date string `json:"date" groups:"basic"`

	Missions     int `json:"missions" groups:"basic"`
	BoardedPax   int `json:"boardedPax" groups:"basic"`
	BoardedBikes int `json:"boardedBikes" groups:"basic"`
}

type Overview struct {
	Missions     int `json:"missions" groups:"basic"`
	BoardedPax   int `json:"boardedPax" groups:"basic"`
	BoardedBikes int `json:"boardedBikes" groups:"basic"`

	Routes []RouteTotals `json:"routes" groups:"basic"`
	Days   []DayTotals   `json:"days" groups:"basic"`

	GeneratedAt time.Time `json:"generatedAt" groups:"basic"`
}

type recordFinder interface {
	All(ctx context.Context) ([]cordf.MissionRecord, error)
}

type Calculator struct {
	records recordFinder
}

func NewCalculator(records recordFinder) *Calculator {
	return &Calculator{
		records: records,
	}
}

// Overview aggregates every persisted mission. Per-route totals fan out
// over a worker pool; each worker sums one route's records from their logs.
func (calculator *Calculator) Overview(ctx context.Context) (*Overview, error) {
	records, err := calculator.records.All(ctx)
	if err != nil {
		return nil, err
	}

	recordsByRoute := map[string][]cordf.MissionRecord{}
	for _, record := range records {
		recordsByRoute[record.Route] = append(recordsByRoute[record.Route], record)
	}

	p := pool.NewWithResults[RouteTotals]()
	p.WithMaxGoroutines(8)

	for route, routeRecords := range recordsByRoute {
		p.Go(func() RouteTotals {
			totals := RouteTotals{Route: route, Missions: len(routeRecords)}

			for _, record := range routeRecords {
				boardedPax, boardedBikes := mission.ComputeTotals(record.StationDetails)
				totals.BoardedPax += boardedPax
				totals.BoardedBikes += boardedBikes
			}

			return totals
		})
	}

	routes := p.Wait()
	sort.Slice(routes, func(i, j int) bool { return routes[i].Route < routes[j].Route })

	overview := &Overview{
		Missions:    len(records),
		Routes:      routes,
		Days:        dayTotals(records),
		GeneratedAt: time.Now(),
	}

	for _, route := range routes {
		overview.BoardedPax += route.BoardedPax
		overview.BoardedBikes += route.BoardedBikes
	}

	return overview, nil
}

func dayTotals(records []cordf.MissionRecord) []DayTotals {
	totalsByDate := map[string]*DayTotals{}

	for _, record := range records {
		totals, ok := totalsByDate[record.Date]
		if !ok {
			totals = &DayTotals{Date: record.Date}
			totalsByDate[record.Date] = totals
		}

		boardedPax, boardedBikes := mission.ComputeTotals(record.StationDetails)

		totals.Missions++
		totals.BoardedPax += boardedPax
		totals.BoardedBikes += boardedBikes
	}

	days := make([]DayTotals, 0, len(totalsByDate))
	for _, totals := range totalsByDate {
		days = append(days, *totals)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days
}
