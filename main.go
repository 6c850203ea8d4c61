package main

import "github.com/zalepa/crimestats/cmd"

func main() {
	cmd.Execute()
}
