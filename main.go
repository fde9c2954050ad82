package main

import (
	"github.com/rtbhouse-apps/rtbhouse-go-sdk/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.SetVersion(version, buildTime)
	cmd.Execute()
}
