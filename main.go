package main

import (
	"github.com/alexsuw/drosophila-dna-analysis/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
