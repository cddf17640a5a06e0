// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes the graphdiff command reference, as markdown and man
// pages, from the command tree itself.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/graphdiff/internal/command"
	"github.com/tfctl/graphdiff/internal/meta"
)

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID    string `yaml:"id"`
	Short string `yaml:"short"`
	Usage string `yaml:"usage"`
	Flags []Flag `yaml:"flags"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template *template.Template
	Folder   string
	Prefix   string
	Suffix   string
}

var markdown = template.Must(template.New("md").Parse(`# graphdiff {{ .ID }}

{{ .Short }}

    {{ .Usage }}

| Flag | Description | Default |
| ---- | ----------- | ------- |
{{ range .Flags }}| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{ end }}
_graphdiff {{ .Version }}, {{ .Date }}_
`))

var man = template.Must(template.New("man").Parse(`.TH GRAPHDIFF-{{ .IDUpper }} 1 "{{ .Date }}" "graphdiff {{ .Version }}"
.SH NAME
graphdiff-{{ .ID }} \- {{ .Short }}
.SH SYNOPSIS
{{ .Usage }}
.SH OPTIONS
{{ range .Flags }}.TP
.B {{ .Syntax }}
{{ .Description }}{{ if .Default }} (default {{ .Default }}){{ end }}
{{ end }}`))

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	config := collect(command.NewApp(meta.Meta{}))

	if err := os.MkdirAll(docs, 0755); err != nil {
		panic(err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(docs, "graphdiff.yaml"), data, 0644); err != nil {
		panic(err)
	}

	for _, sub := range config.Subcommands {
		// Prepare template data
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		types := []Outputs{
			{Template: markdown, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
			{Template: man, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "graphdiff-", Suffix: ".1"},
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			name := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			file, err := os.Create(name)
			if err != nil {
				panic(err)
			}
			fmt.Println("Generating", name)

			if err := t.Template.Execute(file, metadata); err != nil {
				panic(err)
			}

			file.Close()
		}
	}
}

// collect reads the documented subcommands and their flags from app.
func collect(app *cli.Command) Config {
	var config Config
	for _, cmd := range app.Commands {
		if cmd.Name == "completion" {
			continue
		}

		sub := Subcommand{ID: cmd.Name, Short: cmd.Usage, Usage: cmd.UsageText}
		for _, f := range cmd.Flags {
			names := f.Names()
			syntax := make([]string, len(names))
			for i, n := range names {
				if len(n) == 1 {
					syntax[i] = "-" + n
				} else {
					syntax[i] = "--" + n
				}
			}

			flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
			if doc, ok := f.(cli.DocGenerationFlag); ok {
				flag.Description = doc.GetUsage()
				if doc.TakesValue() {
					flag.Default = doc.GetValue()
				}
			}
			sub.Flags = append(sub.Flags, flag)
		}

		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		config.Subcommands = append(config.Subcommands, sub)
	}
	return config
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
