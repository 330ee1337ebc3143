package main

import (
	"github.com/nerdneilsfield/plot-gallery/cmd"
	log "github.com/sirupsen/logrus"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if err := cmd.Execute(version, buildTime, gitCommit); err != nil {
		log.Fatal(err)
	}
}
