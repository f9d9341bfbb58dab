package main

import "github.com/messersm/pyscan/cli"

func main() {
	cli.Run()
}
