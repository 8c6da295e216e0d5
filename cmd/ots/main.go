package main

import "github.com/OpenTraceLab/OpenTraceSynth/cmd/ots/cmd"

func main() {
	cmd.Execute()
}
