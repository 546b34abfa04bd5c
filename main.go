package main

import "gembridge/cmd"

func main() {
	cmd.Execute()
}
