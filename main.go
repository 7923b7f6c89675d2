package main

import "voiceshield-media/cmd"

func main() {
	cmd.Execute()
}
