package main

import "github.com/debdig/debdig/cmd"

var version = "develop"

func main() {
	cmd.Execute(version)
}
