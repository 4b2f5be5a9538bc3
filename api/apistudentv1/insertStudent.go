package apistudentv1

import (
	"context"
	"net/http"

	"github.com/fulldump/studentdb/record"
	"github.com/fulldump/studentdb/service"
)

func insertStudent(ctx context.Context, w http.ResponseWriter, r *http.Request) (*record.Record, error) {

	input := &service.StudentInput{}
	err := readBody(r.Body, input)
	if err != nil {
		return nil, err
	}

	s := GetServicer(ctx)
	student, err := s.Insert(input)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return student, nil
}
