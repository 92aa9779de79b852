// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main provides the assistantctl command line tool: an
// interactive chat with the assistant and catalog maintenance checks.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/your-org/police-portal-assistant/internal/assistant"
	"github.com/your-org/police-portal-assistant/internal/knowledge"
	"github.com/your-org/police-portal-assistant/internal/lang"
	"github.com/your-org/police-portal-assistant/internal/match"
	"github.com/your-org/police-portal-assistant/internal/memory"
	"go.uber.org/zap"
)

var (
	chatLanguage  string
	chatThreshold float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "assistantctl",
		Short: "Police portal assistant command line tool",
		Long:  "Interactive chat with the portal assistant and maintenance checks for its incident catalog.",
	}

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}
	cmd.Flags().StringVar(&chatLanguage, "language", "english", "answer language (english, hindi, marathi)")
	cmd.Flags().Float64Var(&chatThreshold, "threshold", match.DefaultThreshold, "minimum match score")
	return cmd
}

func runChat(cmd *cobra.Command) error {
	language, err := lang.Parse(chatLanguage)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	store, err := knowledge.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load incident catalog: %w", err)
	}

	engine := assistant.NewEngine(store, chatThreshold, logger)
	mem := memory.New()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, engine.Welcome(language))
	fmt.Fprintln(out, `Type your question, "/language hindi" to switch, or "/quit" to leave.`)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := runChatCommand(out, line, &language, mem, store)
			if err != nil {
				fmt.Fprintln(out, err.Error())
			}
			if done {
				return nil
			}
			continue
		}

		answer := engine.Answer(mem, line, language)
		fmt.Fprintln(out, answer.Text)
		fmt.Fprintln(out)
	}
	return scanner.Err()
}

// runChatCommand handles slash commands. It reports whether the REPL
// should exit.
func runChatCommand(out io.Writer, line string, language *lang.Language, mem *memory.Memory, store *knowledge.Store) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/language":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /language <english|hindi|marathi>")
		}
		parsed, err := lang.Parse(fields[1])
		if err != nil {
			return false, err
		}
		if parsed != *language {
			*language = parsed
			mem.Clear()
		}
		fmt.Fprintf(out, "Language set to %s (%s)\n", parsed, parsed.NativeName())
		return false, nil
	case "/topics":
		for _, topic := range store.Topics() {
			fmt.Fprintln(out, "- "+topic)
		}
		return false, nil
	case "/station":
		fmt.Fprintln(out, knowledge.StationInfo(*language))
		return false, nil
	case "/contacts":
		fmt.Fprintln(out, knowledge.OfficerContacts(*language))
		return false, nil
	default:
		return false, fmt.Errorf("unknown command: %s", fields[0])
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the incident catalog for missing translations and fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			store, err := knowledge.Load(logger)
			if err != nil {
				return fmt.Errorf("catalog failed to load: %w", err)
			}

			problems := store.Lint()
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "Catalog OK: %d entries, no problems found\n", store.Len())
				return nil
			}

			for _, problem := range problems {
				fmt.Fprintln(out, problem)
			}
			return fmt.Errorf("catalog has %d problem(s)", len(problems))
		},
	}
}
