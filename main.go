package main

import (
	"os"

	"github.com/shahil5z/QuizAndLessonPlanner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
