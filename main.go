package main

import "github.com/portify/portify/cmd"

func main() {
	cmd.Execute()
}
