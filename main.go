package main

import (
	"github.com/IbadDotCom/Compiler-Construction/cmd"
)

func main() {
	cmd.Execute()
}
