package main

import (
	"github.com/donothingclub/donothing/internal/cli"
)

func main() {
	cli.Execute()
}
