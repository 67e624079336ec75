package main

import "github.com/tidewave/wavemesh/cmd/wavebuild/cmd"

func main() {
	cmd.Execute()
}
