package apistudentv1

import (
	"context"
	"net/http"
)

func save(ctx context.Context, w http.ResponseWriter) error {

	err := GetServicer(ctx).Save()
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
