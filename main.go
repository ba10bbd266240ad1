package main

import "github.com/ontley/amuseing/cmd"

func main() {
	cmd.Execute()
}
