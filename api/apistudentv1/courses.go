package apistudentv1

import (
	"context"
	"net/http"

	"github.com/fulldump/studentdb/record"
)

func addCourse(ctx context.Context, r *http.Request) (*record.Record, error) {

	id, err := getStudentID(ctx)
	if err != nil {
		return nil, err
	}

	course := record.Course{}
	err = readBody(r.Body, &course)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).AddCourse(id, course)
}

type removeCourseRequest struct {
	Name string `json:"name"`
}

func removeCourse(ctx context.Context, r *http.Request) (*record.Record, error) {

	id, err := getStudentID(ctx)
	if err != nil {
		return nil, err
	}

	input := &removeCourseRequest{}
	err = readBody(r.Body, input)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).RemoveCourse(id, input.Name)
}
