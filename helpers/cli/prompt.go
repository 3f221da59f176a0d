// Package cli is the shared interactive main loop: go-prompt on a
// terminal, plain line-batch mode when stdin is a pipe.
package cli

import (
	"bufio"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	prompt "github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"
)

func MainLoop(tag string, exec func(line string), complete func(d prompt.Document) []prompt.Suggest) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		for range signalCh {
			os.Exit(1)
		}
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		prompt.New(exec, complete,
			prompt.OptionPrefix(tag+"> "),
		).Run()
	} else {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			exec(strings.TrimSpace(sc.Text()))
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}
}
