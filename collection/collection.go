package collection

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fulldump/studentdb/record"
)

const (
	DefaultTableSize  = 100
	DefaultMaxCourses = 10
)

var (
	ErrDuplicateID    = errors.New("duplicate id")
	ErrNotFound       = errors.New("student not found")
	ErrCourseNotFound = errors.New("course not found")
)

// Options should have the table shape and the limits applied on every write
type Options struct {
	TableSize  int    `json:"table_size"`
	MaxCourses int    `json:"max_courses"` // 0 means unbounded
	Chain      string `json:"chain"`
}

func DefaultOptions() *Options {
	return &Options{
		TableSize:  DefaultTableSize,
		MaxCourses: DefaultMaxCourses,
		Chain:      ChainSlice,
	}
}

// Collection is a fixed size hash table of students keyed by ID, resolving
// collisions by chaining.
type Collection struct {
	buckets []Chain
	count   int
	options Options
	mutex   *sync.RWMutex
}

// Changes lists the fields to update, nil fields are left untouched
type Changes struct {
	Name       *string          `json:"name,omitempty"`
	Department *string          `json:"department,omitempty"`
	Level      *int             `json:"level,omitempty"`
	Courses    *[]record.Course `json:"courses,omitempty"`
}

type BucketStatistics struct {
	Count        int     `json:"count"`
	TableSize    int     `json:"table_size"`
	LoadFactor   float64 `json:"load_factor"`
	Collisions   int     `json:"collisions"`
	EmptyBuckets int     `json:"empty_buckets"`
	LongestChain int     `json:"longest_chain"`
}

func NewCollection(options *Options) *Collection {

	o := DefaultOptions()
	if options != nil {
		o.MaxCourses = options.MaxCourses
		if options.TableSize > 0 {
			o.TableSize = options.TableSize
		}
		if options.Chain != "" {
			o.Chain = options.Chain
		}
	}

	newChain := newChainFactory(o.Chain)
	buckets := make([]Chain, o.TableSize)
	for i := range buckets {
		buckets[i] = newChain()
	}

	return &Collection{
		buckets: buckets,
		options: *o,
		mutex:   &sync.RWMutex{},
	}
}

func (c *Collection) Options() Options {
	return c.options
}

// bucketIndex is the non-negative remainder of id by the table size
func (c *Collection) bucketIndex(id int) int {
	n := len(c.buckets)
	return ((id % n) + n) % n
}

func (c *Collection) bucket(id int) Chain {
	return c.buckets[c.bucketIndex(id)]
}

func (c *Collection) Insert(id int, name, department string, level int, courses []record.Course) (*record.Record, error) {

	r := record.New(id, name, department, level, courses)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	bucket := c.bucket(id)
	if _, exists := bucket.Get(id); exists {
		return nil, fmt.Errorf("%w: student %d already exists", ErrDuplicateID, id)
	}

	err := record.Validate(r, c.options.MaxCourses)
	if err != nil {
		return nil, err
	}

	bucket.PushFront(r)
	c.count++

	return r.Clone(), nil
}

func (c *Collection) Find(id int) (*record.Record, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	r, ok := c.bucket(id).Get(id)
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// modify applies f on a copy of the stored record and swaps it in only when
// the result is valid, so a failed update leaves the collection untouched.
func (c *Collection) modify(id int, f func(r *record.Record) error) (*record.Record, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	bucket := c.bucket(id)
	current, ok := bucket.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	next := current.Clone()
	err := f(next)
	if err != nil {
		return nil, err
	}

	err = record.Validate(next, c.options.MaxCourses)
	if err != nil {
		return nil, err
	}

	bucket.Replace(next)

	return next.Clone(), nil
}

func (c *Collection) Update(id int, changes *Changes) (*record.Record, error) {
	return c.modify(id, func(r *record.Record) error {
		if changes == nil {
			return nil
		}
		if changes.Name != nil {
			r.Name = *changes.Name
		}
		if changes.Department != nil {
			r.Department = *changes.Department
		}
		if changes.Level != nil {
			r.Level = *changes.Level
		}
		if changes.Courses != nil {
			r.SetCourses(*changes.Courses)
		}
		return nil
	})
}

func (c *Collection) AddCourse(id int, course record.Course) (*record.Record, error) {
	return c.modify(id, func(r *record.Record) error {
		r.AddCourse(course)
		return nil
	})
}

func (c *Collection) RemoveCourse(id int, courseName string) (*record.Record, error) {
	return c.modify(id, func(r *record.Record) error {
		if !r.RemoveCourse(courseName) {
			return fmt.Errorf("%w: '%s' for student %d", ErrCourseNotFound, courseName, id)
		}
		return nil
	})
}

func (c *Collection) Delete(id int) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.bucket(id).Delete(id) {
		return false
	}
	c.count--

	return true
}

func (c *Collection) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.count
}

// Traverse visits a copy of every record in bucket order, then chain order,
// until f returns false.
func (c *Collection) Traverse(f func(r *record.Record) bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	next := true
	for _, bucket := range c.buckets {
		bucket.Traverse(func(r *record.Record) bool {
			next = f(r.Clone())
			return next
		})
		if !next {
			return
		}
	}
}

func (c *Collection) AllRecords() []*record.Record {
	c.mutex.RLock()
	result := make([]*record.Record, 0, c.count)
	c.mutex.RUnlock()

	c.Traverse(func(r *record.Record) bool {
		result = append(result, r)
		return true
	})

	return result
}

func (c *Collection) BucketStatistics() *BucketStatistics {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	stats := &BucketStatistics{
		Count:      c.count,
		TableSize:  len(c.buckets),
		LoadFactor: float64(c.count) / float64(len(c.buckets)),
	}

	for _, bucket := range c.buckets {
		n := bucket.Len()
		if n == 0 {
			stats.EmptyBuckets++
		}
		if n > 1 {
			stats.Collisions += n - 1
		}
		if n > stats.LongestChain {
			stats.LongestChain = n
		}
	}

	return stats
}

// Restore inserts records through the validated insert path. Records are
// taken from last to first so a list produced by AllRecords rebuilds the
// same chains. Rejected records are reported and skipped.
func (c *Collection) Restore(records []*record.Record) []error {
	var errs []error
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		_, err := c.Insert(r.ID, r.Name, r.Department, r.Level, r.Courses)
		if err != nil {
			errs = append(errs, fmt.Errorf("restore student %d: %w", r.ID, err))
		}
	}
	return errs
}
