package apistudentv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/studentdb/record"
)

func listStudents(ctx context.Context) ([]*record.Record, error) {

	s := GetServicer(ctx)
	order := box.GetRequest(ctx).URL.Query().Get("sort")

	return s.List(order)
}
