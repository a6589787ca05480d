// cmd/gitstatusd/main.go

package main

import (
	"github.com/dritter/gitstatusd/cmd/gitstatusd/internal/run"
)

func main() {
	run.Execute()
}
