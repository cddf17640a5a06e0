// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/graphdiff/internal/cacheutil"
	"github.com/tfctl/graphdiff/internal/command"
	"github.com/tfctl/graphdiff/internal/config"
	"github.com/tfctl/graphdiff/internal/log"
	"github.com/tfctl/graphdiff/internal/version"
)

var ctx = context.Background()

// boolFlags never take a value, so the token after them is left alone by
// deduplicateFlags.
var boolFlags = map[string]bool{
	"c":     true,
	"color": true,
	"h":     true,
	"help":  true,
	"none":  true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = deduplicateFlags(args)
	log.Debugf("args after dedup: args=%v", args)
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	if hours, err := config.GetInt("cache.clean", 0); err == nil {
		if err := cacheutil.Purge(hours); err != nil {
			log.Debugf("cache purge err: err=%v", err)
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly handles the @set logic for all commands, expanding set
// arguments at the @set position. Sets live in the config file under
// <command>.<set> as a list of argument strings.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	// Look for an explicit @set argument starting from index 2.
	idx := 2
	removeIdx := -1
	var set string
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			removeIdx = idx + i
			break
		}
	}
	if removeIdx == -1 {
		return args
	}

	// Remove the @set argument.
	args = append(args[:removeIdx:removeIdx], args[removeIdx+1:]...)

	// Expand the set arguments at the removeIdx position.
	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	for _, arg := range setArgs {
		parts := strings.Fields(arg)
		args = append(args[:removeIdx:removeIdx], append(parts, args[removeIdx:]...)...)
		removeIdx += len(parts)
	}
	return args
}

// deduplicateFlags keeps only the last occurrence of each repeated flag, so
// flags typed after an @set override the ones it expanded to. A flag takes
// the following token as its value unless it is written --flag=value, is a
// known boolean, or the next token is itself a flag.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		name  string
		parts []string
	}

	var tokens []token
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			tokens = append(tokens, token{parts: args[i:]})
			break
		}
		if a == "-" || !strings.HasPrefix(a, "-") {
			tokens = append(tokens, token{parts: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		switch {
		case strings.Contains(name, "="):
			name = name[:strings.Index(name, "=")]
			tokens = append(tokens, token{name: name, parts: []string{a}})
		case !boolFlags[name] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-"):
			tokens = append(tokens, token{name: name, parts: []string{a, args[i+1]}})
			i++
		default:
			tokens = append(tokens, token{name: name, parts: []string{a}})
		}
	}

	last := make(map[string]int)
	for i, tok := range tokens {
		if tok.name != "" {
			last[tok.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, tok := range tokens {
		if tok.name != "" && last[tok.name] != i {
			continue
		}
		out = append(out, tok.parts...)
	}
	return out
}
