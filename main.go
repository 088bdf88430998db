package main

import "github.com/gnocchid/gnocchid/cmd"

func main() {
	cmd.Execute()
}
