package main

import "github.com/financeflow/finflow/cmd"

func main() {
	cmd.Execute()
}
