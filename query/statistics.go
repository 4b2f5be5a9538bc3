package query

import (
	"sort"

	"github.com/fulldump/studentdb/record"
)

type Group struct {
	Department string  `json:"department,omitempty"`
	Level      int     `json:"level,omitempty"`
	Count      int     `json:"count"`
	AverageGPA float64 `json:"average_gpa"`

	total float64
}

type Statistics struct {
	Total int `json:"total"`

	// NoData is set on an empty source, averages are not computed then
	NoData bool `json:"no_data,omitempty"`

	AverageGPA  float64  `json:"average_gpa"`
	Departments []*Group `json:"departments"`
	Levels      []*Group `json:"levels"`
}

func Summarize(src Source) *Statistics {

	records := src.AllRecords()

	stats := &Statistics{
		Total:       len(records),
		Departments: []*Group{},
		Levels:      []*Group{},
	}

	if len(records) == 0 {
		stats.NoData = true
		return stats
	}

	departments := map[string]*Group{}
	levels := map[int]*Group{}
	total := 0.0

	for _, r := range records {
		total += r.GPA

		d, exists := departments[r.Department]
		if !exists {
			d = &Group{Department: r.Department}
			departments[r.Department] = d
			stats.Departments = append(stats.Departments, d)
		}
		d.Count++
		d.total += r.GPA

		l, exists := levels[r.Level]
		if !exists {
			l = &Group{Level: r.Level}
			levels[r.Level] = l
			stats.Levels = append(stats.Levels, l)
		}
		l.Count++
		l.total += r.GPA
	}

	stats.AverageGPA = total / float64(len(records))

	for _, g := range stats.Departments {
		g.AverageGPA = g.total / float64(g.Count)
	}
	for _, g := range stats.Levels {
		g.AverageGPA = g.total / float64(g.Count)
	}

	sort.Slice(stats.Departments, func(i, j int) bool {
		return stats.Departments[i].Department < stats.Departments[j].Department
	})
	sort.Slice(stats.Levels, func(i, j int) bool {
		return stats.Levels[i].Level < stats.Levels[j].Level
	})

	return stats
}
