// Command routerctl checks and inspects router configuration files.
//
//	routerctl check [-env-file FILE]... CONFIG...
//	routerctl show [-env-file FILE]... CONFIG
//	routerctl get [-env-file FILE]... CONFIG POLICY [LLM]
//
// Output never contains API keys.
package main

import (
	"os"

	"github.com/Egham-7/llm-router/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, config.DefaultLogger()))
}
