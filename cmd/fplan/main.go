package main

import "github.com/mchmarny/factoryplan/pkg/cli"

func main() {
	cli.Execute()
}
