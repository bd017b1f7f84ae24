package main

import "github.com/mcprep/mcprep/cmd"

func main() {
	cmd.Execute()
}
