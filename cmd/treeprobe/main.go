package main

import "treeprobe/cmd/treeprobe/cmd"

func main() {
	cmd.Execute()
}
