package main

import (
	"time"
)

func TestInsert(c Config) {

	if c.Base == "" {
		_, stop := CreateServer(&c)
		defer stop()
	}

	t0 := time.Now()
	Insert(c)
	Report("inserted", c.N, time.Since(t0))
}
