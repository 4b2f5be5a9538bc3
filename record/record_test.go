package record

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"
)

func TestGradePoint(t *testing.T) {

	cases := map[float64]float64{
		100:   5.0,
		95:    5.0,
		94.99: 4.75,
		90:    4.75,
		85:    4.5,
		80:    4.0,
		79.9:  3.5,
		75:    3.5,
		70:    3.0,
		65:    2.5,
		60:    2.0,
		59.99: 0,
		0:     0,
	}

	for percentage, expected := range cases {
		AssertEqual(GradePoint(percentage), expected)
	}
}

func TestCalculateGPA(t *testing.T) {

	AssertEqual(CalculateGPA(nil), 0.0)

	gpa := CalculateGPA([]Course{
		{Name: "Algorithms", Grade: 92},
		{Name: "Networks", Grade: 72},
	})
	AssertEqual(gpa, 3.875)
}

func TestNew(t *testing.T) {

	courses := []Course{
		{Name: "Algorithms", Grade: 92},
		{Name: "Networks", Grade: 72},
	}
	r := New(101, "Amara Obi", "CS", 3, courses)

	AssertEqual(r.ID, 101)
	AssertEqual(r.Name, "Amara Obi")
	AssertEqual(r.Department, "CS")
	AssertEqual(r.Level, 3)
	AssertEqual(r.Courses, courses)
	AssertEqual(r.GPA, 3.875)

	// the record does not alias the caller slice
	courses[0].Grade = 10
	AssertEqual(r.Courses[0].Grade, 92.0)
}

func TestRecord_AddRemoveCourse(t *testing.T) {

	r := New(1, "Fulanez", "IT", 1, nil)
	AssertEqual(r.GPA, 0.0)

	r.AddCourse(Course{Name: "Maths", Grade: 96})
	AssertEqual(r.GPA, 5.0)

	r.AddCourse(Course{Name: "Maths", Grade: 50})
	AssertEqual(r.GPA, 2.5)
	AssertEqual(len(r.Courses), 2)

	AssertTrue(r.RemoveCourse("Maths"))
	AssertEqual(r.Courses, []Course{{Name: "Maths", Grade: 50}})
	AssertEqual(r.GPA, 0.0)

	AssertFalse(r.RemoveCourse("Physics"))
	AssertTrue(r.RemoveCourse("Maths"))
	AssertEqual(len(r.Courses), 0)
	AssertEqual(r.GPA, 0.0)
}

func TestRecord_RemoveCourseKeepsOrder(t *testing.T) {

	r := New(1, "Fulanez", "IT", 1, []Course{
		{Name: "A", Grade: 90},
		{Name: "B", Grade: 80},
		{Name: "C", Grade: 70},
	})
	clone := r.Clone()

	r.RemoveCourse("B")

	AssertEqual(r.Courses, []Course{{Name: "A", Grade: 90}, {Name: "C", Grade: 70}})
	AssertEqual(len(clone.Courses), 3)
	AssertEqual(clone.Courses[1].Name, "B")
}

func TestValidate(t *testing.T) {

	valid := New(1, "Fulanez", "CS", 5, []Course{{Name: "Maths", Grade: 50}})
	AssertNil(Validate(valid, 10))

	cases := []struct {
		modify   func(r *Record)
		expected error
	}{
		{func(r *Record) { r.Level = 0 }, ErrInvalidLevel},
		{func(r *Record) { r.Level = 11 }, ErrInvalidLevel},
		{func(r *Record) { r.Department = "XX" }, ErrInvalidDepartment},
		{func(r *Record) { r.Department = "cs" }, ErrInvalidDepartment},
		{func(r *Record) { r.Name = "two\nlines" }, ErrInvalidName},
		{func(r *Record) { r.Name = "Bad \xff" }, ErrInvalidName},
		{func(r *Record) { r.Courses[0].Grade = -1 }, ErrInvalidGrade},
		{func(r *Record) { r.Courses[0].Grade = 100.5 }, ErrInvalidGrade},
		{func(r *Record) { r.Courses[0].Name = "" }, ErrInvalidCourseName},
		{func(r *Record) { r.Courses[0].Name = "Maths (advanced)" }, ErrInvalidCourseName},
		{func(r *Record) { r.Courses[0].Name = "Maths, Physics" }, ErrInvalidCourseName},
		{func(r *Record) { r.Courses[0].Name = "100%" }, ErrInvalidCourseName},
		{func(r *Record) { r.Courses[0].Name = "Maths \xc3" }, ErrInvalidCourseName},
	}

	for _, c := range cases {
		r := valid.Clone()
		c.modify(r)
		err := Validate(r, 10)
		AssertTrue(errors.Is(err, c.expected))
		AssertTrue(IsValidationError(err))
	}
}

func TestValidate_MaxCourses(t *testing.T) {

	r := New(1, "Fulanez", "CS", 5, []Course{
		{Name: "A", Grade: 50},
		{Name: "B", Grade: 50},
		{Name: "C", Grade: 50},
	})

	AssertTrue(errors.Is(Validate(r, 2), ErrMaxCoursesExceeded))
	AssertNil(Validate(r, 3))
	AssertNil(Validate(r, 0))
}

func TestValidateDepartment(t *testing.T) {
	for _, d := range Departments {
		AssertNil(ValidateDepartment(d))
	}
	AssertNotNil(ValidateDepartment(""))
}
