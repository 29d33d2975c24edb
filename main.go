package main

import "github.com/moviemate/watchparty/cmd"

func main() {
	cmd.Execute()
}
