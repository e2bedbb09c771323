package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Egham-7/llm-router/internal/config"
	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/utils"

	"golang.org/x/sync/errgroup"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `usage:
  routerctl check [-env-file FILE]... CONFIG...
  routerctl show [-env-file FILE]... CONFIG
  routerctl get [-env-file FILE]... CONFIG POLICY [LLM]

flags may appear before or after arguments; "--" ends flag parsing.
`

// maxConcurrentChecks bounds how many files check loads at once
const maxConcurrentChecks = 8

type envFiles []string

func (f *envFiles) String() string { return strings.Join(*f, ",") }

func (f *envFiles) Set(value string) error {
	*f = append(*f, value)
	return nil
}

type command struct {
	stdout io.Writer
	stderr io.Writer
	log    config.Logger
	env    config.Environment
}

func run(args []string, stdout, stderr io.Writer, log config.Logger) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	name, rest := args[0], args[1:]
	fs := flag.NewFlagSet("routerctl "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var files envFiles
	fs.Var(&files, "env-file", "read variables from a .env file (repeatable; process environment wins)")
	quiet := fs.Bool("q", false, "suppress substitution and validation log output")

	positional, err := parseArgs(fs, rest)
	if err != nil {
		return exitUsage
	}

	cmd := &command{stdout: stdout, stderr: stderr, log: log}
	if *quiet || cmd.log == nil {
		cmd.log = config.NopLogger()
	}

	env, err := environment(files)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFail
	}
	cmd.env = env

	switch name {
	case "check":
		return cmd.check(positional)
	case "show":
		return cmd.show(positional)
	case "get":
		return cmd.get(positional)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", name, usage)
		return exitUsage
	}
}

// parseArgs parses flags wherever they appear in args and returns the
// positional arguments in order. Everything after "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// environment layers the process environment over the given .env files,
// the first file taking precedence over later ones.
func environment(files []string) (config.Environment, error) {
	layers := config.LayeredEnvironment{config.OSEnvironment{}}
	for _, path := range files {
		values, err := config.ReadEnvFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, values)
	}
	return layers, nil
}

func (c *command) loader() *config.Loader {
	return config.NewLoader(config.WithEnvironment(c.env), config.WithLogger(c.log))
}

func (c *command) check(paths []string) int {
	if len(paths) == 0 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	results := make([]error, len(paths))
	counts := make([]int, len(paths))
	loader := c.loader()

	var g errgroup.Group
	g.SetLimit(maxConcurrentChecks)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			cfg, err := loader.LoadFromFile(path)
			if err != nil {
				results[i] = err
				return nil
			}
			counts[i] = len(cfg.Policies)
			return nil
		})
	}
	// Loads never fail the group; per-file errors are kept in results.
	g.Wait()

	code := exitOK
	for i, path := range paths {
		if err := results[i]; err != nil {
			kind, _ := config.KindOf(err)
			fmt.Fprintf(c.stdout, "FAIL %s [%s]: %v\n", path, kind, err)
			code = exitFail
			continue
		}
		fmt.Fprintf(c.stdout, "ok   %s (%d policies)\n", path, counts[i])
	}
	return code
}

func (c *command) show(args []string) int {
	if len(args) != 1 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	cfg, err := c.loader().LoadFromFile(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return exitFail
	}
	return c.writeYAML(cfg.Sanitized())
}

func (c *command) get(args []string) int {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprint(c.stderr, usage)
		return exitUsage
	}

	cfg, err := c.loader().LoadFromFile(args[0])
	if err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return exitFail
	}

	policy, ok := cfg.GetPolicyByName(args[1])
	if !ok {
		fmt.Fprintf(c.stderr, "error: %v\n", models.NewNotFoundError("policy", args[1]))
		return exitFail
	}
	if len(args) == 2 {
		return c.writeYAML(policy.Sanitized())
	}

	llm, ok := policy.GetLLMByName(args[2])
	if !ok {
		fmt.Fprintf(c.stderr, "error: %v\n", models.NewNotFoundError("llm", args[2]))
		return exitFail
	}
	return c.writeYAML(llm.Sanitized())
}

func (c *command) writeYAML(v any) int {
	out, err := utils.MarshalYAML(v)
	if err == nil {
		_, err = c.stdout.Write(out)
	}
	if err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return exitFail
	}
	return exitOK
}
