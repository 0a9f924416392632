package main

import (
	"os"

	"github.com/autogroup-lms/autogroup/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
