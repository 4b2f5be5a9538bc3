package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/fulldump/studentdb/snapshot"
)

func TestRemove(c Config) {

	createServer := c.Base == ""

	var stop func()
	var filename, format string
	if createServer {
		conf, s := CreateServer(&c)
		stop = s
		filename = conf.Filename
		format = conf.Format
	}

	fmt.Println("Preload students...")
	Insert(c)

	// keep one student out of ten so the snapshot is not empty
	var failed int64
	t0 := time.Now()
	ForEachID(c.Workers, c.N, func(id int64) {
		if id%10 == 0 {
			return
		}
		status, err := Do(http.MethodDelete, c.Base+"/v1/students/"+strconv.FormatInt(id, 10), nil)
		if err != nil || status != http.StatusNoContent {
			atomic.AddInt64(&failed, 1)
		}
	})
	Report("removed", c.N-(c.N+9)/10, time.Since(t0))

	if failed > 0 {
		fmt.Println("ERROR: failed removes:", failed)
	}

	if !createServer {
		return
	}

	stop() // Stop the server, writes the snapshot

	codec, err := snapshot.CodecByName(format)
	if err != nil {
		fmt.Println("ERROR:", err.Error())
		return
	}

	t1 := time.Now()
	records, _, err := snapshot.LoadFile(filename, codec)
	if err != nil {
		fmt.Println("ERROR: load snapshot:", err.Error())
		return
	}
	Report("snapshot load", int64(len(records)), time.Since(t1))
}
