package record

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinLevel = 1
	MaxLevel = 10

	MinGrade = 0.0
	MaxGrade = 100.0
)

// Departments is the fixed set of department codes a record can belong to
var Departments = []string{"CE", "CS", "EE", "IT"}

var (
	ErrInvalidLevel       = errors.New("invalid level")
	ErrInvalidDepartment  = errors.New("invalid department")
	ErrInvalidGrade       = errors.New("invalid grade")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidCourseName  = errors.New("invalid course name")
	ErrMaxCoursesExceeded = errors.New("max courses exceeded")
)

type Course struct {
	Name  string  `json:"name"`
	Grade float64 `json:"grade"`
}

type Record struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Level      int      `json:"level"`
	Courses    []Course `json:"courses"`
	GPA        float64  `json:"gpa"`
}

// New builds a record owning its own copy of courses, with GPA already derived.
func New(id int, name, department string, level int, courses []Course) *Record {
	r := &Record{
		ID:         id,
		Name:       name,
		Department: department,
		Level:      level,
	}
	r.SetCourses(courses)
	return r
}

// Recalculate derives GPA from the current course list.
func (r *Record) Recalculate() {
	r.GPA = CalculateGPA(r.Courses)
}

func (r *Record) SetCourses(courses []Course) {
	r.Courses = append([]Course{}, courses...)
	r.Recalculate()
}

func (r *Record) AddCourse(course Course) {
	r.Courses = append(r.Courses, course)
	r.Recalculate()
}

// RemoveCourse drops the first course named name and reports whether there
// was one.
func (r *Record) RemoveCourse(name string) bool {
	for i, course := range r.Courses {
		if course.Name != name {
			continue
		}
		r.Courses = append(r.Courses[:i:i], r.Courses[i+1:]...)
		r.Recalculate()
		return true
	}
	return false
}

func (r *Record) HasCourse(name string) bool {
	for _, course := range r.Courses {
		if course.Name == name {
			return true
		}
	}
	return false
}

func (r *Record) Clone() *Record {
	c := *r
	c.Courses = append([]Course{}, r.Courses...)
	return &c
}

func (r *Record) String() string {
	return fmt.Sprintf("%d %s (%s, level %d, gpa %.2f)", r.ID, r.Name, r.Department, r.Level, r.GPA)
}

func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: %d, must be between %d and %d", ErrInvalidLevel, level, MinLevel, MaxLevel)
	}
	return nil
}

func ValidateDepartment(department string) error {
	for _, d := range Departments {
		if d == department {
			return nil
		}
	}
	return fmt.Errorf("%w: '%s', must be %s", ErrInvalidDepartment, department, strings.Join(Departments, ", "))
}

func ValidateName(name string) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidName)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: line breaks are not allowed", ErrInvalidName)
	}
	return nil
}

// courseNameReserved are the characters the text snapshot uses to delimit
// course entries.
const courseNameReserved = ",()%\r\n"

func ValidateCourse(course Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCourseName)
	}
	if !utf8.ValidString(course.Name) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidCourseName, course.Name)
	}
	if strings.ContainsAny(course.Name, courseNameReserved) {
		return fmt.Errorf("%w: '%s' contains one of %q", ErrInvalidCourseName, course.Name, courseNameReserved)
	}
	if course.Grade < MinGrade || course.Grade > MaxGrade || course.Grade != course.Grade {
		return fmt.Errorf("%w: %v for '%s', must be between 0 and 100", ErrInvalidGrade, course.Grade, course.Name)
	}
	return nil
}

// Validate checks every writable field. maxCourses <= 0 means unbounded.
func Validate(r *Record, maxCourses int) error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	if err := ValidateDepartment(r.Department); err != nil {
		return err
	}
	if err := ValidateLevel(r.Level); err != nil {
		return err
	}
	if maxCourses > 0 && len(r.Courses) > maxCourses {
		return fmt.Errorf("%w: %d courses, maximum is %d", ErrMaxCoursesExceeded, len(r.Courses), maxCourses)
	}
	for _, course := range r.Courses {
		if err := ValidateCourse(course); err != nil {
			return err
		}
	}
	return nil
}

// IsValidationError tells whether err comes from a field check.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidLevel) ||
		errors.Is(err, ErrInvalidDepartment) ||
		errors.Is(err, ErrInvalidGrade) ||
		errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidCourseName) ||
		errors.Is(err, ErrMaxCoursesExceeded)
}
