package apistudentv1

import (
	"context"
	"net/http"

	"github.com/fulldump/studentdb/record"
	"github.com/fulldump/studentdb/service"
)

func find(ctx context.Context, r *http.Request) ([]*record.Record, error) {

	q := &service.FindQuery{}
	err := readBody(r.Body, q)
	if err != nil {
		return nil, err
	}

	return GetServicer(ctx).Find(q)
}
