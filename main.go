/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package main

import (
	"uniconv/cmd"
)

func main() {
	cmd.Execute()
}

// go build -ldflags="-s -w -X 'uniconv/internal/version.Version=v1.0.0' -X 'uniconv/internal/version.Commit=$(git rev-parse HEAD)' -X 'uniconv/internal/version.BuildDate=$(date -u +%Y-%m-%d_%H:%M:%S)'" -o release/uniconv
