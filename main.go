package main

import (
	"log"

	"github.com/Thireb/AI-agent-email-generator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
