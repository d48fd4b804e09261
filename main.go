package main

import "github.com/chatkeep/chatkeep/cmd"

func main() {
	cmd.Execute()
}
