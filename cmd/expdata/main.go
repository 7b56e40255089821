// Expdata loads, cleans and plots the measurements of benchmarking experiments.
package main

import "github.com/relab/expdata/internal/cli"

func main() {
	cli.Execute()
}
