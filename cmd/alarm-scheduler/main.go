package main

import "github.com/oshokin/alarm-scheduler/cmd/alarm-scheduler/cmd"

func main() {
	cmd.Execute()
}
