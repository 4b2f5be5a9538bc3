package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	jsonv2 "github.com/go-json-experiment/json"

	"github.com/fulldump/studentdb/bootstrap"
	"github.com/fulldump/studentdb/configuration"
	"github.com/fulldump/studentdb/record"
)

type JSON = map[string]any

var client = &http.Client{
	Transport: &http.Transport{
		MaxConnsPerHost:     1024,
		MaxIdleConnsPerHost: 1024,
		MaxIdleConns:        1024,
	},
	Timeout: 10 * time.Second,
}

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

// ForEachID spreads ids [0, n) among workers
func ForEachID(workers int, n int64, f func(id int64)) {
	next := int64(-1)
	Parallel(workers, func() {
		for {
			id := atomic.AddInt64(&next, 1)
			if id >= n {
				return
			}
			f(id)
		}
	})
}

func TempDir() (string, func()) {
	dir, err := os.MkdirTemp("", "studentdb_bench_*")
	if err != nil {
		panic("Could not create temp directory: " + err.Error())
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

func CreateServer(c *Config) (conf *configuration.Configuration, stop func()) {
	dir, cleanup := TempDir()
	cleanups = append(cleanups, cleanup)

	conf = configuration.Default()
	conf.Filename = filepath.Join(dir, "students.txt")
	conf.TableSize = 10_007
	conf.EnableCompression = false
	c.Base = "http://" + conf.HttpAddr

	start, stop := bootstrap.Bootstrap(conf)
	go start()

	WaitReady(c.Base)

	return conf, stop
}

// WaitReady polls until the database finished loading
func WaitReady(base string) {
	for {
		resp, err := client.Get(base + "/v1/buckets")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func Do(method, url string, body any) (int, error) {

	payload := []byte{}
	if body != nil {
		var err error
		payload, err = jsonv2.Marshal(body)
		if err != nil {
			return 0, err
		}
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func FakeStudent(id int64) JSON {
	return JSON{
		"id":         id,
		"name":       fmt.Sprintf("Student %d", id),
		"department": record.Departments[id%int64(len(record.Departments))],
		"level":      id%record.MaxLevel + 1,
		"courses": []JSON{
			{"name": "Algorithms", "grade": float64(id % 101)},
			{"name": "Networks", "grade": float64((id * 7) % 101)},
		},
	}
}

func Report(what string, n int64, took time.Duration) {
	fmt.Println(what+":", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f ops/sec\n", float64(n)/took.Seconds())
}

func Insert(c Config) {
	var failed int64
	ForEachID(c.Workers, c.N, func(id int64) {
		status, err := Do(http.MethodPost, c.Base+"/v1/students", FakeStudent(id))
		if err != nil || status != http.StatusCreated {
			atomic.AddInt64(&failed, 1)
		}
	})
	if failed > 0 {
		fmt.Println("ERROR: failed inserts:", failed)
	}
}
