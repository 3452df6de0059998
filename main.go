package main

import "github.com/snowgate/snowgate/cmd"

func main() {
	cmd.Execute()
}
