package service

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/fulldump/apitest"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/studentdb/utils"
)

const examplesHost = "studentdb.example.com"

// Save renders a request/response pair as a markdown page under
// API_EXAMPLES_PATH, nothing is written when the variable is not set.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request
	requestBody := formatJSON(response.BodyRequestString())

	target := request.URL.Path
	if request.URL.RawQuery != "" {
		target += "?" + request.URL.RawQuery
	}

	s := &strings.Builder{}

	fmt.Fprintf(s, "# %s\n", title)
	if description != "" {
		fmt.Fprintf(s, "%s\n", cropTabs(description))
	}

	s.WriteString("\nCurl example:\n\n```sh\ncurl ")
	if request.Method != http.MethodGet {
		fmt.Fprintf(s, "-X %s ", request.Method)
	}
	fmt.Fprintf(s, "\"https://%s%s\"", examplesHost, target)
	for _, k := range utils.GetKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(s, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if requestBody != "" {
		fmt.Fprintf(s, " \\\n-d '%s'", requestBody)
	}
	s.WriteString("\n```\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(s, "%s %s %s\n", request.Method, target, request.Proto)
	fmt.Fprintf(s, "Host: %s\n", examplesHost)
	writeHeaders(s, request.Header)
	fmt.Fprintf(s, "\n%s\n\n", requestBody)

	fmt.Fprintf(s, "%s %s\n", response.Proto, response.Status)
	writeHeaders(s, response.Header)
	fmt.Fprintf(s, "\n%s\n```\n", formatJSON(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	fmt.Println("Saving", p)
	err := os.WriteFile(p, []byte(s.String()), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

// writeHeaders writes headers sorted by name, volatile ones are fixed so the
// generated docs are stable.
func writeHeaders(s *strings.Builder, header http.Header) {
	for _, k := range utils.GetKeys(header) {
		switch k {
		case "Date":
			s.WriteString("Date: Mon, 15 Aug 2022 02:08:13 GMT\n")
			continue
		case "X-Request-Id":
			s.WriteString("X-Request-Id: 0b5a7a4e-4c8b-4f3e-8d55-6b0c9f3b2a11\n")
			continue
		}
		for _, v := range header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
}

func formatJSON(body string) string {

	var i interface{}
	err := jsonv2.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	b, err := jsonv2.Marshal(i, jsontext.WithIndent("    "))
	if err != nil {
		return body
	}

	return string(b)
}

// cropTabs removes the indentation shared by all non blank lines
func cropTabs(d string) string {
	lines := strings.Split(d, "\n")

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return strings.TrimSpace(d)
	}

	prefix := strings.Repeat("\t", common)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
