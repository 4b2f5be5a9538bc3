package service

import (
	"errors"
	"fmt"

	"github.com/fulldump/studentdb/collection"
	"github.com/fulldump/studentdb/database"
	"github.com/fulldump/studentdb/query"
	"github.com/fulldump/studentdb/record"
)

type Service struct {
	db       *database.Database
	students *collection.Collection
}

func NewService(db *database.Database) *Service {
	return &Service{
		db:       db,
		students: db.Students,
	}
}

func notFound(id int, err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return fmt.Errorf("%w: %d", ErrorStudentNotFound, id)
	}
	return err
}

func (s *Service) Insert(student *StudentInput) (*record.Record, error) {
	return s.students.Insert(student.ID, student.Name, student.Department, student.Level, student.Courses)
}

func (s *Service) Get(id int) (*record.Record, error) {
	r, found := s.students.Find(id)
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrorStudentNotFound, id)
	}
	return r, nil
}

func (s *Service) Update(id int, changes *collection.Changes) (*record.Record, error) {
	r, err := s.students.Update(id, changes)
	return r, notFound(id, err)
}

func (s *Service) AddCourse(id int, course record.Course) (*record.Record, error) {
	r, err := s.students.AddCourse(id, course)
	return r, notFound(id, err)
}

func (s *Service) RemoveCourse(id int, courseName string) (*record.Record, error) {
	r, err := s.students.RemoveCourse(id, courseName)
	return r, notFound(id, err)
}

func (s *Service) Delete(id int) error {
	if !s.students.Delete(id) {
		return fmt.Errorf("%w: %d", ErrorStudentNotFound, id)
	}
	return nil
}

func sortRecords(src query.Source, order string) ([]*record.Record, error) {
	switch order {
	case OrderDefault:
		return src.AllRecords(), nil
	case OrderGPA:
		return query.SortByGPA(src), nil
	case OrderName:
		return query.SortByName(src), nil
	case OrderReverse:
		return query.Reverse(src), nil
	}
	return nil, fmt.Errorf("%w: '%s'", ErrorUnknownOrder, order)
}

func (s *Service) List(order string) ([]*record.Record, error) {
	return sortRecords(s.students, order)
}

func (s *Service) Find(q *FindQuery) ([]*record.Record, error) {

	if q.Level == nil && q.Department == nil && q.Course == nil && len(q.Filter) == 0 {
		return nil, ErrorEmptyQuery
	}

	result := s.students.AllRecords()

	var err error
	if q.Level != nil {
		result, err = query.FindByLevel(query.Records(result), *q.Level)
		if err != nil {
			return nil, err
		}
	}
	if q.Department != nil {
		result, err = query.FindByDepartment(query.Records(result), *q.Department)
		if err != nil {
			return nil, err
		}
	}
	if q.Course != nil {
		result = query.FindByCourse(query.Records(result), *q.Course)
	}
	if len(q.Filter) > 0 {
		result, err = query.Filter(query.Records(result), q.Filter)
		if err != nil {
			return nil, err
		}
	}

	return sortRecords(query.Records(result), q.Sort)
}

func (s *Service) Statistics() *query.Statistics {
	return query.Summarize(s.students)
}

func (s *Service) BucketStatistics() *collection.BucketStatistics {
	return s.students.BucketStatistics()
}

func (s *Service) Save() error {
	return s.db.Save()
}
