package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fulldump/studentdb/collection"
	"github.com/fulldump/studentdb/snapshot"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	Filename   string
	Format     string
	TableSize  int
	MaxCourses int
	Chain      string
}

type Database struct {
	Config   *Config
	Students *collection.Collection

	status   atomic.Value
	exit     chan struct{}
	exitOnce sync.Once
}

func NewDatabase(config *Config) *Database {
	db := &Database{
		Config: config,
		Students: collection.NewCollection(&collection.Options{
			TableSize:  config.TableSize,
			MaxCourses: config.MaxCourses,
			Chain:      config.Chain,
		}),
		exit: make(chan struct{}),
	}
	db.status.Store(StatusOpening)

	return db
}

func (db *Database) GetStatus() string {
	return db.status.Load().(string)
}

// Load restores the snapshot file. A missing or unreadable file is not an
// error, the database just starts empty.
func (db *Database) Load() error {

	log.Printf("Loading students from '%s'...\n", db.Config.Filename)

	o := db.Students.Options()
	log.Printf("Table of %d buckets with %s chains, max courses %d\n", o.TableSize, o.Chain, o.MaxCourses)

	codec, err := snapshot.CodecByName(db.Config.Format)
	if err != nil {
		db.leaveOpening(StatusClosing)
		return err
	}

	t0 := time.Now()
	records, skipped, err := snapshot.LoadFile(db.Config.Filename, codec)
	if errors.Is(err, os.ErrNotExist) {
		log.Println("No previous data found, starting fresh")
		db.leaveOpening(StatusOperating)
		return nil
	}
	if errors.Is(err, snapshot.ErrFileUnavailable) {
		log.Println("WARNING: starting empty:", err.Error())
		db.leaveOpening(StatusOperating)
		return nil
	}
	if err != nil {
		db.leaveOpening(StatusClosing)
		return fmt.Errorf("load snapshot: %w", err)
	}

	for _, s := range skipped {
		log.Println("WARNING: skipped:", s.Error())
	}
	for _, s := range db.Students.Restore(records) {
		log.Println("WARNING: rejected:", s.Error())
	}

	log.Println(db.Students.Len(), "students loaded in", time.Since(t0))

	db.leaveOpening(StatusOperating)

	return nil
}

// leaveOpening moves out of opening, a Stop that happened meanwhile wins.
func (db *Database) leaveOpening(status string) {
	db.status.CompareAndSwap(StatusOpening, status)
}

func (db *Database) Save() error {

	codec, err := snapshot.CodecByName(db.Config.Format)
	if err != nil {
		return err
	}

	records := db.Students.AllRecords()
	err = snapshot.SaveFile(db.Config.Filename, codec, records)
	if err != nil {
		return err
	}

	log.Printf("%d students saved to '%s'\n", len(records), db.Config.Filename)

	return nil
}

func (db *Database) Start() error {

	go func() {
		err := db.Load()
		if err != nil {
			log.Println("ERROR:", err.Error())
		}
	}()

	<-db.exit

	return nil
}

// Stop saves the snapshot, only if it was loaded successfully, and releases
// Start.
func (db *Database) Stop() error {

	defer db.exitOnce.Do(func() {
		close(db.exit)
	})

	previous := db.status.Swap(StatusClosing)
	if previous != StatusOperating {
		return nil
	}

	return db.Save()
}
