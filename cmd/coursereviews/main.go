package main

import "github.com/iliyamo/course-reviews/internal/cli"

func main() {
	cli.Execute()
}
