// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/graphdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for graphdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_graphdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff flatten completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --exclude -x --format --output -o --select -s --aws-profile --aws-region --s3-endpoint"

    case "$cmd" in
        diff)
            local opts="$common --base-label --working-label --none"
            ;;
        flatten)
            local opts="$common"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "auto json yaml hcl" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Documents are files.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _graphdiff graphdiff
`

const zshCompletionScript = `#compdef graphdiff

_graphdiff() {
  local -a cmds
  cmds=(
    'diff:diff two documents'
    'flatten:print the flattened document'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-x --exclude)'{-x,--exclude}'[property names to leave out]:names'
  '--format[document format]:format:(auto json yaml hcl)'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --select)'{-s,--select}'[path to select]:path'
  '--aws-profile[aws profile]:profile'
  '--aws-region[aws region]:region'
  '--s3-endpoint[S3 compatible endpoint]:url'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'graphdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $common \
        '--base-label[base header label]:label' \
        '--working-label[working header label]:label' \
        '--none[base does not exist yet]' \
        '*:document:_files'
      ;;
    flatten)
      _arguments -C \
        $common \
        '1:document:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:document:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _graphdiff graphdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	out := metaOf(cmd).Out()

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(out, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(out, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: graphdiff completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "graphdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: completionCommandAction,
	}
}
