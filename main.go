package main

import (
	"log"

	"github.com/JaimeV365/job-seeker-cheater/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
