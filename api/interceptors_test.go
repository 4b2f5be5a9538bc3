package api

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/fulldump/apitest"
	. "github.com/fulldump/biff"

	"github.com/fulldump/studentdb/database"
	"github.com/fulldump/studentdb/service"
)

func newTestApi(t *testing.T, load bool) (*apitest.Apitest, *database.Database) {

	db := database.NewDatabase(&database.Config{
		Filename: filepath.Join(t.TempDir(), "students.txt"),
	})
	if load {
		AssertNil(db.Load())
	}

	b := Build(service.NewService(db), "test", "", "")
	b.WithInterceptors(
		RequestId,
		Compression(1),
		PrettyErrorInterceptor,
		RecoverFromPanic,
		InterceptorUnavailable(db),
	)

	return apitest.NewWithHandler(b), db
}

func TestUnavailable(t *testing.T) {

	api, db := newTestApi(t, false)

	resp := api.Request("GET", "/v1/students").Do()
	AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)

	AssertNil(db.Load())
	resp = api.Request("GET", "/v1/students").Do()
	AssertEqual(resp.StatusCode, http.StatusOK)

	AssertNil(db.Stop())
	resp = api.Request("GET", "/v1/students").Do()
	AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
}

func TestRequestId(t *testing.T) {

	api, _ := newTestApi(t, true)

	resp := api.Request("GET", "/release").Do()
	AssertEqual(len(resp.Header.Get("X-Request-Id")), 36)

	resp = api.Request("GET", "/release").
		WithHeader("X-Request-Id", "my-request").
		Do()
	AssertEqual(resp.Header.Get("X-Request-Id"), "my-request")
}

func TestCompression(t *testing.T) {

	api, _ := newTestApi(t, true)

	resp := api.Request("GET", "/v1/statistics").
		WithHeader("Accept-Encoding", "gzip").
		Do()
	AssertEqual(resp.StatusCode, http.StatusOK)
	AssertEqual(resp.Header.Get("Content-Encoding"), "gzip")

	gz, err := gzip.NewReader(bytes.NewReader(resp.BodyBytes()))
	AssertNil(err)
	body, err := io.ReadAll(gz)
	AssertNil(err)
	AssertTrue(bytes.Contains(body, []byte(`"no_data":true`)))
}

func TestPrettyError_MarshalTo(t *testing.T) {

	b := &bytes.Buffer{}
	err := PrettyError{
		Message:     "student not found",
		Description: "Not found",
	}.MarshalTo(b)
	AssertNil(err)
	AssertEqual(b.String(), `{"error":{"message":"student not found","description":"Not found"}}`)

	b.Reset()
	err = PrettyError{
		Message:     "bad bytes \xff",
		Description: "Invalid input",
	}.MarshalTo(b)
	AssertNil(err)
	AssertTrue(bytes.Contains(b.Bytes(), []byte(`"description":"Invalid input"`)))
}

func TestUnavailable_Body(t *testing.T) {

	api, _ := newTestApi(t, false)

	resp := api.Request("GET", "/v1/students").Do()
	AssertEqual(resp.StatusCode, http.StatusServiceUnavailable)
	AssertEqualJson(resp.BodyJson(), map[string]any{
		"error": map[string]any{
			"message":     "temporary unavailable: opening",
			"description": "Service unavailable, try again later",
		},
	})
}

func TestAcceptsGzip(t *testing.T) {

	cases := map[string]bool{
		"":                    false,
		"gzip":                true,
		"GZIP":                true,
		"deflate, gzip;q=0.8": true,
		"br, *":               true,
		"gzip;q=0":            false,
		"gzip; q=0.000":       false,
		"identity":            false,
		"gzipped":             false,
	}

	for header, expected := range cases {
		AssertEqual(acceptsGzip(header), expected)
	}
}

func TestCompression_Refused(t *testing.T) {

	api, _ := newTestApi(t, true)

	resp := api.Request("GET", "/v1/statistics").
		WithHeader("Accept-Encoding", "gzip;q=0").
		Do()
	AssertEqual(resp.StatusCode, http.StatusOK)
	AssertEqual(resp.Header.Get("Content-Encoding"), "")
	AssertEqual(resp.Header.Get("Vary"), "Accept-Encoding")
	AssertTrue(bytes.Contains(resp.BodyBytes(), []byte(`"no_data":true`)))
}
