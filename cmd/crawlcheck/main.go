package main

import (
	cmd "github.com/crawlcheck/crawlcheck/internal/cli"
)

func main() {
	cmd.Execute()
}
