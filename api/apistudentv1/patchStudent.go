package apistudentv1

import (
	"context"
	"net/http"

	"github.com/fulldump/studentdb/collection"
	"github.com/fulldump/studentdb/record"
)

func patchStudent(ctx context.Context, r *http.Request) (*record.Record, error) {

	id, err := getStudentID(ctx)
	if err != nil {
		return nil, err
	}

	changes := &collection.Changes{}
	err = readBody(r.Body, changes)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).Update(id, changes)
}
