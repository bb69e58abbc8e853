package main

import (
	"github.com/NVIDIA/odata-serializer/pkg/cli"
)

func main() {
	cli.Execute()
}
