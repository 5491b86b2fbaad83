package main

import "github.com/khrees2412/hireboard/cmd"

func main() {
	cmd.Execute()
}
