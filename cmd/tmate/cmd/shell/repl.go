package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
	apperrors "transcribe-mate/internal/app/errors"
	"transcribe-mate/internal/app/session"
	"transcribe-mate/internal/app/ui"
)

// errQuit ends the read loop
var errQuit = apperrors.New("quit")

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, arg string) error
}

// Shell is the interactive session: it reads commands, drives the
// controller and renders the display after each one.
type Shell struct {
	ctrl    *session.Controller
	display *session.Display
	out     io.Writer
	spinner ui.SpinnerConfig

	instruction string
	commands    map[string]command
}

// New creates a shell writing to out
func New(ctrl *session.Controller, display *session.Display, out io.Writer, spinner ui.SpinnerConfig) *Shell {
	s := &Shell{
		ctrl:    ctrl,
		display: display,
		out:     out,
		spinner: spinner,
	}
	s.commands = map[string]command{
		"record": {usage: "record", help: "start recording from the microphone", run: s.record},
		"stop":   {usage: "stop", help: "stop recording and transcribe", run: s.stop},
		"upload": {usage: "upload <file>", help: "transcribe an audio file", run: s.upload},
		"paste":  {usage: "paste <text>", help: "use text as the transcript", run: s.paste},
		"clean":  {usage: "clean [instruction]", help: "clean the transcript", run: s.clean},
		"prompt": {usage: "prompt [text|reset]", help: "show or set the cleaning instruction", run: s.prompt},
		"toggle": {usage: "toggle", help: "switch between original and cleaned", run: s.toggle},
		"copy":   {usage: "copy", help: "copy the shown text to the clipboard", run: s.copy},
		"show":   {usage: "show", help: "print the shown text", run: s.show},
		"status": {usage: "status", help: "print the session status", run: s.status},
		"help":   {usage: "help", help: "list commands", run: s.help},
		"quit":   {usage: "quit", help: "leave the shell", run: func(context.Context, string) error { return errQuit }},
	}
	s.commands["exit"] = s.commands["quit"]
	return s
}

// Instruction returns the instruction sent with the next clean
func (s *Shell) Instruction() string {
	return s.instruction
}

// Run loads the default instruction, then executes commands from in until
// quit or end of input. ctx bounds recordings.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	s.instruction = s.ctrl.LoadSystemPrompt(ctx)

	fmt.Fprintln(s.out, "Type 'help' for commands.")
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Fprint(s.out, "tmate> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := s.Execute(ctx, scanner.Text()); err == errQuit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Execute runs one command line
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	cmd, ok := s.commands[strings.ToLower(name)]
	if !ok {
		fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for commands.\n", name)
		return nil
	}

	err := cmd.run(ctx, arg)
	if err == errQuit {
		return err
	}
	s.report(err)
	return err
}

func (s *Shell) record(ctx context.Context, _ string) error {
	if err := s.ctrl.StartRecording(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "🎙  Recording... type 'stop' to finish")
	return nil
}

func (s *Shell) stop(ctx context.Context, _ string) error {
	err := ui.Run(s.spinner, "Transcribing", func() error {
		return s.ctrl.StopRecording(ctx)
	})
	s.render()
	return err
}

func (s *Shell) upload(ctx context.Context, path string) error {
	if path == "" {
		return apperrors.Validation("usage: upload <file>")
	}
	err := ui.Run(s.spinner, "Transcribing", func() error {
		return s.ctrl.UploadFile(ctx, path)
	})
	s.render()
	return err
}

func (s *Shell) paste(ctx context.Context, text string) error {
	if err := s.ctrl.Paste(ctx, text); err != nil {
		return err
	}
	s.render()
	return nil
}

// clean sends a one-off instruction when given one; the standing
// instruction only changes through prompt.
func (s *Shell) clean(ctx context.Context, instruction string) error {
	instruction = lo.Ternary(instruction != "", instruction, s.instruction)
	err := ui.Run(s.spinner, "Cleaning", func() error {
		return s.ctrl.Clean(ctx, instruction)
	})
	s.render()
	return err
}

func (s *Shell) prompt(ctx context.Context, arg string) error {
	switch arg {
	case "":
	case "reset":
		s.instruction = s.ctrl.DefaultPrompt()
	default:
		s.instruction = arg
	}
	if s.instruction == "" {
		fmt.Fprintln(s.out, "Instruction: (backend default)")
		return nil
	}
	fmt.Fprintf(s.out, "Instruction: %s\n", s.instruction)
	return nil
}

func (s *Shell) toggle(context.Context, string) error {
	if !s.display.Toggle() {
		return apperrors.Validation("No cleaned version yet")
	}
	s.render()
	return nil
}

func (s *Shell) copy(context.Context, string) error {
	if err := s.display.Copy(); err != nil {
		return err
	}
	if s.display.Copied() {
		fmt.Fprintf(s.out, "Copied %s text!\n", s.display.View())
	}
	return nil
}

func (s *Shell) show(context.Context, string) error {
	s.render()
	return nil
}

func (s *Shell) status(context.Context, string) error {
	st := s.display.State()
	flags := st.Status()
	fmt.Fprintf(s.out, "State: %s  capturing=%t cleaning=%t error=%t recording=%t view=%s\n",
		st.Kind, flags.Capturing, flags.Cleaning, flags.HasError, s.ctrl.Recording(), s.display.View())
	return nil
}

func (s *Shell) help(context.Context, string) error {
	names := lo.Filter(lo.Keys(s.commands), func(name string, _ int) bool {
		return name != "exit"
	})
	sort.Strings(names)
	for _, name := range names {
		c := s.commands[name]
		fmt.Fprintf(s.out, "  %-22s %s\n", c.usage, c.help)
	}
	return nil
}

// render prints what the display shows
func (s *Shell) render() {
	st := s.display.State()
	switch st.Kind {
	case session.Error:
		fmt.Fprintf(s.out, "❌ %s\n", st.Err)
	case session.Idle:
		fmt.Fprintln(s.out, "No transcript yet.")
		return
	}

	text := s.display.Text()
	if text == "" {
		return
	}
	fmt.Fprintf(s.out, "--- %s ---\n%s\n", s.display.View(), text)
}

// report prints errors the rendered state does not already show. Capture
// failures are left to the session's diagnostics.
func (s *Shell) report(err error) {
	if err == nil {
		return
	}
	if st := s.display.State(); st.Kind == session.Error && apperrors.UserMessage(err, "") == st.Err {
		return
	}

	switch {
	case apperrors.Is(err, apperrors.ErrValidation):
		fmt.Fprintln(s.out, apperrors.UserMessage(err, err.Error()))
	case apperrors.Is(err, apperrors.ErrBusy),
		apperrors.Is(err, apperrors.ErrNotRecording),
		apperrors.Is(err, session.ErrSuperseded):
		fmt.Fprintln(s.out, err.Error())
	}
}
