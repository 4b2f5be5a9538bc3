package apistudentv1

import (
	"context"

	"github.com/fulldump/studentdb/record"
)

func getStudent(ctx context.Context) (*record.Record, error) {

	id, err := getStudentID(ctx)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).Get(id)
}
