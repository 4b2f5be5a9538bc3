package query

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/studentdb/record"
)

func fixture() Records {
	return Records{
		record.New(1, "Carla", "CS", 2, []record.Course{{Name: "Algorithms", Grade: 80}}),
		record.New(2, "Ada", "IT", 3, []record.Course{{Name: "Networks", Grade: 95}}),
		record.New(3, "Bruno", "CS", 2, []record.Course{{Name: "Algorithms", Grade: 82}, {Name: "Networks", Grade: 70}}),
		record.New(4, "Ada", "CE", 5, nil),
		record.New(5, "Dario", "IT", 3, []record.Course{{Name: "Compilers", Grade: 81}}),
	}
}

func ids(records []*record.Record) []int {
	result := []int{}
	for _, r := range records {
		result = append(result, r.ID)
	}
	return result
}

func TestSortByGPA(t *testing.T) {

	src := fixture()

	// 1 and 5 share GPA 4.0, ties keep source order
	AssertEqual(ids(SortByGPA(src)), []int{2, 1, 5, 3, 4})

	// the source is left untouched
	AssertEqual(ids(src), []int{1, 2, 3, 4, 5})
}

func TestSortByName(t *testing.T) {

	AssertEqual(ids(SortByName(fixture())), []int{2, 4, 3, 1, 5})
}

func TestSort_Empty(t *testing.T) {

	AssertEqual(len(SortByGPA(Records{})), 0)
	AssertEqual(len(SortByName(Records{})), 0)
}

func TestReverse(t *testing.T) {

	AssertEqual(ids(Reverse(fixture())), []int{5, 4, 3, 2, 1})
	AssertEqual(len(Reverse(Records{})), 0)
}

func TestFindByLevel(t *testing.T) {

	found, err := FindByLevel(fixture(), 3)
	AssertNil(err)
	AssertEqual(ids(found), []int{2, 5})

	found, err = FindByLevel(fixture(), 9)
	AssertNil(err)
	AssertEqual(len(found), 0)

	_, err = FindByLevel(fixture(), 11)
	AssertTrue(errors.Is(err, record.ErrInvalidLevel))
}

func TestFindByDepartment(t *testing.T) {

	found, err := FindByDepartment(fixture(), "CS")
	AssertNil(err)
	AssertEqual(ids(found), []int{1, 3})

	found, err = FindByDepartment(fixture(), "EE")
	AssertNil(err)
	AssertEqual(len(found), 0)

	_, err = FindByDepartment(fixture(), "cs")
	AssertTrue(errors.Is(err, record.ErrInvalidDepartment))
}

func TestFindByCourse(t *testing.T) {

	AssertEqual(ids(FindByCourse(fixture(), "Networks")), []int{2, 3})
	AssertEqual(len(FindByCourse(fixture(), "networks")), 0)
}

func TestFilter(t *testing.T) {

	found, err := Filter(fixture(), map[string]interface{}{
		"department": "IT",
	})
	AssertNil(err)
	AssertEqual(ids(found), []int{2, 5})

	found, err = Filter(fixture(), map[string]interface{}{
		"level": map[string]interface{}{"$gte": 3.0},
	})
	AssertNil(err)
	AssertEqual(ids(found), []int{2, 4, 5})

	found, err = Filter(fixture(), map[string]interface{}{})
	AssertNil(err)
	AssertEqual(len(found), 5)
}

func TestSummarize(t *testing.T) {

	stats := Summarize(fixture())

	AssertFalse(stats.NoData)
	AssertEqual(stats.Total, 5)
	AssertEqual(stats.AverageGPA, (4.0+5.0+3.5+0+4.0)/5)

	AssertEqual(stats.Departments, []*Group{
		{Department: "CE", Count: 1, AverageGPA: 0, total: 0},
		{Department: "CS", Count: 2, AverageGPA: (4.0 + 3.5) / 2, total: 4.0 + 3.5},
		{Department: "IT", Count: 2, AverageGPA: (5.0 + 4.0) / 2, total: 5.0 + 4.0},
	})

	AssertEqual(len(stats.Levels), 3)
	AssertEqual(stats.Levels[0].Level, 2)
	AssertEqual(stats.Levels[1].Level, 3)
	AssertEqual(stats.Levels[2].Level, 5)
	AssertEqual(stats.Levels[1].Count, 2)
}

func TestSummarize_NoData(t *testing.T) {

	stats := Summarize(Records{})

	AssertTrue(stats.NoData)
	AssertEqual(stats.Total, 0)
	AssertEqual(stats.AverageGPA, 0.0)
	AssertEqual(len(stats.Departments), 0)
}
