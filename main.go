package main

import (
	"github.com/chatwootops/chatwootctl/cmd"
	"github.com/chatwootops/chatwootctl/pkg/logger"
)

func main() {
	logger.InitializeWithFallback()
	cmd.Execute()
}
