package apistudentv1

import (
	"context"

	"github.com/fulldump/studentdb/collection"
	"github.com/fulldump/studentdb/query"
)

func getStatistics(ctx context.Context) (*query.Statistics, error) {
	return GetServicer(ctx).Statistics(), nil
}

func getBuckets(ctx context.Context) (*collection.BucketStatistics, error) {
	return GetServicer(ctx).BucketStatistics(), nil
}
