package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	. "github.com/fulldump/biff"

	"github.com/fulldump/studentdb/record"
	"github.com/fulldump/studentdb/snapshot"
)

func newTestDatabase(t *testing.T, format string) *Database {
	return NewDatabase(&Config{
		Filename:   filepath.Join(t.TempDir(), "students.txt"),
		Format:     format,
		TableSize:  10,
		MaxCourses: 10,
	})
}

func TestLoad_MissingFile(t *testing.T) {

	db := newTestDatabase(t, "text")
	AssertEqual(db.GetStatus(), StatusOpening)

	err := db.Load()
	AssertNil(err)
	AssertEqual(db.GetStatus(), StatusOperating)
	AssertEqual(db.Students.Len(), 0)
}

func TestLoad_UnreadableFile(t *testing.T) {

	db := NewDatabase(&Config{
		Filename:  t.TempDir(), // a directory cannot be read as a snapshot
		Format:    "text",
		TableSize: 10,
	})

	err := db.Load()
	AssertNil(err)
	AssertEqual(db.GetStatus(), StatusOperating)
	AssertEqual(db.Students.Len(), 0)
}

func TestLoad_UnknownFormat(t *testing.T) {

	db := newTestDatabase(t, "yaml")

	err := db.Load()
	AssertNotNil(err)
	AssertEqual(db.GetStatus(), StatusClosing)
}

func TestSaveLoad(t *testing.T) {

	for _, format := range []string{snapshot.FormatText, snapshot.FormatJSON} {
		t.Run(format, func(t *testing.T) {

			db := newTestDatabase(t, format)
			AssertNil(db.Load())

			db.Students.Insert(101, "Amara Obi", "CS", 3, []record.Course{
				{Name: "Algorithms", Grade: 92},
				{Name: "Networks", Grade: 72},
			})
			db.Students.Insert(11, "Lin Wu", "EE", 1, nil)
			db.Students.Insert(1, "Ada", "IT", 2, nil)

			AssertNil(db.Stop())
			AssertEqual(db.GetStatus(), StatusClosing)

			reloaded := NewDatabase(db.Config)
			AssertNil(reloaded.Load())
			AssertEqual(reloaded.Students.AllRecords(), db.Students.AllRecords())
		})
	}
}

func TestSave_InvalidUTF8NeverStored(t *testing.T) {

	for _, format := range []string{snapshot.FormatText, snapshot.FormatJSON} {
		t.Run(format, func(t *testing.T) {

			db := newTestDatabase(t, format)
			AssertNil(db.Load())

			_, err := db.Students.Insert(1, "Ada", "IT", 2, nil)
			AssertNil(err)
			_, err = db.Students.Insert(2, "Bad \xff", "CS", 1, nil)
			AssertTrue(errors.Is(err, record.ErrInvalidName))
			_, err = db.Students.Insert(3, "Lin Wu", "EE", 1, []record.Course{
				{Name: "Op\xfftics", Grade: 80},
			})
			AssertTrue(errors.Is(err, record.ErrInvalidCourseName))

			AssertNil(db.Save())

			data, err := os.ReadFile(db.Config.Filename)
			AssertNil(err)
			AssertTrue(utf8.Valid(data))

			reloaded := NewDatabase(db.Config)
			AssertNil(reloaded.Load())
			AssertEqual(reloaded.Students.Len(), 1)
		})
	}
}

func TestLoad_SkipsMalformed(t *testing.T) {

	db := newTestDatabase(t, "text")

	data := `========== STUDENT DATABASE ==========

Student ID   : 1
Name         : Good
Department   : CS
Level        : 2
GPA (5.0)    : 0.00
Courses      : N/A
--------------------------------------
Student ID   : 2
Name         : Bad level
Department   : CS
Level        : 99
GPA (5.0)    : 0.00
Courses      : N/A
--------------------------------------
Student ID   : 3
Name         : Bad block
--------------------------------------
`
	err := os.WriteFile(db.Config.Filename, []byte(data), 0644)
	AssertNil(err)

	AssertNil(db.Load())
	AssertEqual(db.Students.Len(), 1)

	_, found := db.Students.Find(1)
	AssertTrue(found)
}

func TestStop_WithoutLoad(t *testing.T) {

	db := newTestDatabase(t, "text")
	db.Students.Insert(1, "Ada", "IT", 2, nil)

	AssertNil(db.Stop())

	_, err := os.Stat(db.Config.Filename)
	AssertTrue(os.IsNotExist(err))
}

func TestLoad_AfterStopStaysClosed(t *testing.T) {

	db := newTestDatabase(t, "text")

	AssertNil(db.Stop())
	AssertNil(db.Load())
	AssertEqual(db.GetStatus(), StatusClosing)

	_, err := os.Stat(db.Config.Filename)
	AssertTrue(os.IsNotExist(err))
}

func TestStartStop(t *testing.T) {

	db := newTestDatabase(t, "text")

	done := make(chan struct{})
	go func() {
		db.Start()
		close(done)
	}()

	for db.GetStatus() != StatusOperating {
		time.Sleep(time.Millisecond)
	}

	AssertNil(db.Stop())
	AssertNil(db.Stop())
	<-done

	_, err := os.Stat(db.Config.Filename)
	AssertNil(err)
}
