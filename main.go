package main

import "github.com/iksnae/convo-search/cmd"

func main() {
	cmd.Execute()
}
