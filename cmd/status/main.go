package main

import "github.com/status-system/progression/cmd/status/root"

func main() {
	root.Execute()
}
