package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"railchat/internal/service"
)

const banner = `🚆 Bienvenue sur railchat !
Posez votre question sur les trains, les horaires, les prix ou les lignes.
Tapez « aide » pour des exemples, « quitter » pour sortir.`

const prompt = "> "

// chatSession reads one question per line and prints the assistant's reply.
// Lines are processed one at a time.
type chatSession struct {
	assistant *service.Assistant
	in        io.Reader
	out       io.Writer
	explain   bool
}

// Run loops until an exit literal, end of input or context cancellation
func (s *chatSession) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, banner)
	reader := bufio.NewReader(s.in)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, prompt)

		line, err := reader.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" {
			if service.IsExit(text) {
				fmt.Fprintln(s.out, "👋 Au revoir !")
				return nil
			}
			s.answer(ctx, text)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
	}
}

func (s *chatSession) answer(ctx context.Context, text string) {
	resp := s.assistant.Respond(ctx, text)
	if s.explain {
		fmt.Fprintf(s.out, "[intention: %s, gares: %s]\n", resp.Intent, strings.Join(resp.Entities, ", "))
	}
	fmt.Fprintln(s.out, resp.Reply)
}
