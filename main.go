package main

import "qa-forum/cmd"

func main() {
	cmd.Execute()
}
