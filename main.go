package main

import "github.com/MyCarrier-DevOps/go-envdeps/cmd"

func main() {
	cmd.Execute()
}
