package main

import (
	"github.com/arcadely/arcade/internal/cli"
)

func main() {
	cli.Execute()
}
