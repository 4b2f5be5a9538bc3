package service

import (
	"errors"

	"github.com/fulldump/studentdb/collection"
	"github.com/fulldump/studentdb/query"
	"github.com/fulldump/studentdb/record"
)

var (
	ErrorStudentNotFound = errors.New("student not found")
	ErrorUnknownOrder    = errors.New("unknown order")
	ErrorEmptyQuery      = errors.New("empty query")
)

const (
	OrderDefault = ""
	OrderGPA     = "gpa"
	OrderName    = "name"
	OrderReverse = "reverse"
)

type Servicer interface {
	Insert(student *StudentInput) (*record.Record, error)
	Get(id int) (*record.Record, error)
	Update(id int, changes *collection.Changes) (*record.Record, error)
	AddCourse(id int, course record.Course) (*record.Record, error)
	RemoveCourse(id int, courseName string) (*record.Record, error)
	Delete(id int) error
	List(order string) ([]*record.Record, error)
	Find(q *FindQuery) ([]*record.Record, error)
	Statistics() *query.Statistics
	BucketStatistics() *collection.BucketStatistics
	Save() error
}

type StudentInput struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Department string          `json:"department"`
	Level      int             `json:"level"`
	Courses    []record.Course `json:"courses"`
}

// FindQuery criteria are combined, a student must match all of them
type FindQuery struct {
	Level      *int                   `json:"level,omitempty"`
	Department *string                `json:"department,omitempty"`
	Course     *string                `json:"course,omitempty"`
	Filter     map[string]interface{} `json:"filter,omitempty"`
	Sort       string                 `json:"sort,omitempty"`
}
