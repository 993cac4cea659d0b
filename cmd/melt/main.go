// cmd/melt/main.go
package main

import (
	"melt/internal/appshell"
	"melt/internal/meltapp"
)

func main() { appshell.Main(meltapp.RunContext) }
