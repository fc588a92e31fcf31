package main

import "github.com/dd0wney/cluso-resilience/cmd/resilience/commands"

func main() {
	commands.Execute()
}
