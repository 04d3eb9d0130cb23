package main

import (
	"log"

	"github.com/tripathik9559/railops/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
