package query

import (
	"fmt"

	"github.com/SierraSoftworks/connor"
	"github.com/google/btree"

	"github.com/fulldump/studentdb/record"
	"github.com/fulldump/studentdb/utils"
)

// Source provides the records a query runs over. The query engine never
// modifies what it receives.
type Source interface {
	AllRecords() []*record.Record
}

// Records adapts a plain slice to Source
type Records []*record.Record

func (r Records) AllRecords() []*record.Record {
	return r
}

type positioned struct {
	*record.Record
	position int
}

// sortBy orders records with less, breaking ties by original position so
// equal keys keep their relative order.
func sortBy(src Source, less func(a, b *record.Record) bool) []*record.Record {

	tree := btree.NewG(32, func(a, b positioned) bool {
		if less(a.Record, b.Record) {
			return true
		}
		if less(b.Record, a.Record) {
			return false
		}
		return a.position < b.position
	})

	for i, r := range src.AllRecords() {
		tree.ReplaceOrInsert(positioned{Record: r, position: i})
	}

	result := make([]*record.Record, 0, tree.Len())
	tree.Ascend(func(item positioned) bool {
		result = append(result, item.Record)
		return true
	})

	return result
}

// SortByGPA returns records from the highest GPA to the lowest
func SortByGPA(src Source) []*record.Record {
	return sortBy(src, func(a, b *record.Record) bool {
		return a.GPA > b.GPA
	})
}

func SortByName(src Source) []*record.Record {
	return sortBy(src, func(a, b *record.Record) bool {
		return a.Name < b.Name
	})
}

func Reverse(src Source) []*record.Record {
	records := src.AllRecords()
	result := make([]*record.Record, len(records))
	for i, r := range records {
		result[len(records)-1-i] = r
	}
	return result
}

func scan(src Source, match func(r *record.Record) bool) []*record.Record {
	result := []*record.Record{}
	for _, r := range src.AllRecords() {
		if match(r) {
			result = append(result, r)
		}
	}
	return result
}

func FindByLevel(src Source, level int) ([]*record.Record, error) {
	if err := record.ValidateLevel(level); err != nil {
		return nil, err
	}
	return scan(src, func(r *record.Record) bool {
		return r.Level == level
	}), nil
}

func FindByDepartment(src Source, department string) ([]*record.Record, error) {
	if err := record.ValidateDepartment(department); err != nil {
		return nil, err
	}
	return scan(src, func(r *record.Record) bool {
		return r.Department == department
	}), nil
}

func FindByCourse(src Source, courseName string) []*record.Record {
	return scan(src, func(r *record.Record) bool {
		return r.HasCourse(courseName)
	})
}

// Filter keeps the records whose JSON form matches a connor (mongo like)
// filter, for example {"level": {"$gte": 3}, "department": "CS"}.
func Filter(src Source, filter map[string]interface{}) ([]*record.Record, error) {

	if len(filter) == 0 {
		return src.AllRecords(), nil
	}

	result := []*record.Record{}
	for _, r := range src.AllRecords() {
		data := map[string]interface{}{}
		err := utils.Remarshal(r, &data)
		if err != nil {
			return nil, fmt.Errorf("remarshal student %d: %w", r.ID, err)
		}

		match, err := connor.Match(filter, data)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		if match {
			result = append(result, r)
		}
	}

	return result, nil
}
