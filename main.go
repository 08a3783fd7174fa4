/*
Copyright 2024 Markus Papenbrock
*/
package main

import "github.com/mpapenbr/deepracer-toolkit-go/cmd"

func main() {
	cmd.Execute()
}
