package main

import "github.com/tablomester/tablomester/cmd"

func main() {
	cmd.Execute()
}
