package main

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fulldump/studentdb/record"
)

func TestFind(c Config) {

	if c.Base == "" {
		_, stop := CreateServer(&c)
		defer stop()
		Insert(c)
	}

	queries := []JSON{}
	for _, department := range record.Departments {
		queries = append(queries, JSON{"department": department, "sort": "gpa"})
	}
	for level := record.MinLevel; level <= record.MaxLevel; level++ {
		queries = append(queries, JSON{"level": level})
	}
	queries = append(queries, JSON{"course": "Networks"})
	queries = append(queries, JSON{"filter": JSON{"level": JSON{"$gte": 5}}})

	n := int64(c.Workers * 10)
	var failed int64

	t0 := time.Now()
	ForEachID(c.Workers, n, func(i int64) {
		q := queries[i%int64(len(queries))]
		status, err := Do(http.MethodPost, c.Base+"/v1/students:find", q)
		if err != nil || status != http.StatusOK {
			atomic.AddInt64(&failed, 1)
		}
	})
	Report("queries", n, time.Since(t0))

	if failed > 0 {
		fmt.Println("ERROR: failed queries:", failed)
	}
}
