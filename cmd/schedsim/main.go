package main

import (
	"log"
	"os"

	"github.com/viant/schedsim/cmd/schedsim/cmd"
)

func main() {
	if err := cmd.New().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
