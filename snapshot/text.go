package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fulldump/studentdb/record"
)

// Text is the human readable snapshot, one labeled block per student:
//
//	Student ID   : 101
//	Name         : Amara Obi
//	Department   : CS
//	Level        : 3
//	GPA (5.0)    : 3.88
//	Courses      : Algorithms (92.0%), Networks (72.0%)
//	--------------------------------------
var Text Codec = &textCodec{}

const (
	textBanner    = "========== STUDENT DATABASE =========="
	textSeparator = "--------------------------------------"
	textNoCourses = "N/A"

	labelID         = "Student ID"
	labelName       = "Name"
	labelDepartment = "Department"
	labelLevel      = "Level"
	labelGPA        = "GPA (5.0)"
	labelCourses    = "Courses"

	labelWidth = 13
)

var textLabels = []string{labelID, labelName, labelDepartment, labelLevel, labelGPA, labelCourses}

type textCodec struct{}

func (t *textCodec) Encode(w io.Writer, records []*record.Record) error {

	b := bufio.NewWriter(w)

	fmt.Fprintf(b, "%s\n\n", textBanner)
	for _, r := range records {
		writeField(b, labelID, strconv.Itoa(r.ID))
		writeField(b, labelName, r.Name)
		writeField(b, labelDepartment, r.Department)
		writeField(b, labelLevel, strconv.Itoa(r.Level))
		writeField(b, labelGPA, strconv.FormatFloat(r.GPA, 'f', 2, 64))
		writeField(b, labelCourses, formatCourses(r.Courses))
		fmt.Fprintf(b, "%s\n", textSeparator)
	}

	return b.Flush()
}

func writeField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-*s: %s\n", labelWidth, label, value)
}

func formatCourses(courses []record.Course) string {
	if len(courses) == 0 {
		return textNoCourses
	}

	parts := make([]string, len(courses))
	for i, c := range courses {
		parts[i] = c.Name + " (" + formatGrade(c.Grade) + "%)"
	}
	return strings.Join(parts, ", ")
}

// formatGrade writes the shortest form that parses back to the same value,
// with at least one decimal.
func formatGrade(grade float64) string {
	s := strconv.FormatFloat(grade, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func parseCourses(value string) ([]record.Course, error) {
	if value == textNoCourses {
		return nil, nil
	}

	courses := []record.Course{}
	for _, token := range strings.Split(value, ", ") {
		open := strings.LastIndex(token, " (")
		if open < 0 || !strings.HasSuffix(token, "%)") {
			return nil, fmt.Errorf("bad course '%s'", token)
		}
		grade, err := strconv.ParseFloat(token[open+2:len(token)-2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad grade in course '%s'", token)
		}
		courses = append(courses, record.Course{
			Name:  token[:open],
			Grade: grade,
		})
	}

	return courses, nil
}

// splitField recognizes 'Label   : value' lines
func splitField(line string) (label, value string, ok bool) {
	for _, label := range textLabels {
		if !strings.HasPrefix(line, label) {
			continue
		}
		rest := strings.TrimLeft(line[len(label):], " ")
		if !strings.HasPrefix(rest, ":") {
			continue
		}
		return label, strings.TrimPrefix(rest[1:], " "), true
	}
	return "", "", false
}

type textBlock struct {
	line   int
	fields map[string]string
	err    error
}

func (b *textBlock) fail(format string, a ...interface{}) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: line %d: %s", ErrMalformedBlock, b.line, fmt.Sprintf(format, a...))
	}
}

func (b *textBlock) record() (*record.Record, error) {
	if b.err != nil {
		return nil, b.err
	}

	for _, label := range textLabels {
		if _, exists := b.fields[label]; !exists {
			b.fail("missing '%s'", label)
			return nil, b.err
		}
	}

	id, err := strconv.Atoi(b.fields[labelID])
	if err != nil {
		b.fail("bad student id '%s'", b.fields[labelID])
		return nil, b.err
	}

	level, err := strconv.Atoi(b.fields[labelLevel])
	if err != nil {
		b.fail("bad level '%s'", b.fields[labelLevel])
		return nil, b.err
	}

	// GPA is derived from courses, it only needs to be well formed
	_, err = strconv.ParseFloat(b.fields[labelGPA], 64)
	if err != nil {
		b.fail("bad gpa '%s'", b.fields[labelGPA])
		return nil, b.err
	}

	courses, err := parseCourses(b.fields[labelCourses])
	if err != nil {
		b.fail("%s", err.Error())
		return nil, b.err
	}

	return record.New(id, b.fields[labelName], b.fields[labelDepartment], level, courses), nil
}

func (t *textCodec) Decode(r io.Reader) ([]*record.Record, []error, error) {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	records := []*record.Record{}
	skipped := []error{}

	var block *textBlock
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if line == textSeparator {
			if block == nil {
				continue
			}
			r, err := block.record()
			if err != nil {
				skipped = append(skipped, err)
			} else {
				records = append(records, r)
			}
			block = nil
			continue
		}

		label, value, isField := splitField(line)
		if !isField {
			if block != nil && strings.TrimSpace(line) != "" {
				block.fail("unexpected content '%s'", line)
			}
			continue
		}

		if block == nil {
			block = &textBlock{line: n, fields: map[string]string{}}
		}
		if _, exists := block.fields[label]; exists {
			block.fail("duplicated '%s'", label)
			continue
		}
		block.fields[label] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if block != nil {
		block.fail("unterminated block")
		skipped = append(skipped, block.err)
	}

	return records, skipped, nil
}
