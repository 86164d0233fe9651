package main

import "github.com/blogfolio/cmd/server/commands"

func main() {
	commands.Execute()
}
