package main

import "roadtrack/cmd/roadtrack-cli/cmd"

func main() {
	cmd.Execute()
}
