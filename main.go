package main

import "github.com/flowhr/flowhr/cmd"

func main() {
	cmd.Execute()
}
