package main

import (
	receiptwire "github.com/receiptwirehq/core"
	"github.com/receiptwirehq/core/config"
)

func main() {
	receiptwire.Start(config.LoadConfig())
}
