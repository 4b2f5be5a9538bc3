package apistudentv1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fulldump/box"
	jsonv2 "github.com/go-json-experiment/json"
)

var ErrInvalidStudentID = errors.New("invalid student id")

func getStudentID(ctx context.Context) (int, error) {
	value := box.GetUrlParameter(ctx, "studentId")
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidStudentID, value)
	}
	return id, nil
}

// readBody decodes a request body, field names are matched exactly
func readBody(r io.Reader, v any) error {
	return jsonv2.UnmarshalRead(r, v)
}
