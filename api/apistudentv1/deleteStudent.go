package apistudentv1

import (
	"context"
	"net/http"
)

func deleteStudent(ctx context.Context, w http.ResponseWriter) error {

	id, err := getStudentID(ctx)
	if err != nil {
		return err
	}

	err = GetServicer(ctx).Delete(id)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
