package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/config"
	"github.com/hackgods/counseling-scheduler/internal/db"
	"github.com/hackgods/counseling-scheduler/internal/session"
)

// localSession is the one session id a CLI install keeps in its sqlite file.
const localSession = "local"

const usage = `usage: counsel [-backend URL] [-db PATH] <command> [flags]

commands:
  login -u USER                 sign in (password is prompted)
  register -u USER -id ID -birthdate YYYY-MM-DD
  logout                        forget the signed-in user
  whoami                        show the signed-in user
  book -date D -time T -concern C
  list [-day D]                 your appointments
  attend [-no] ID               mark attendance for today's appointment
  admin-list [-status S] [-day D]
  set-status ID STATUS          approve, reject, complete or cancel
  report [-type T] [-status S] [-day D] [-o FILE|-]
`

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	backendURL := flag.String("backend", cfg.BackendURL, "counseling backend base URL")
	dbPath := flag.String("db", cfg.SQLitePath, "sqlite file holding the local session")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open session file: %v", err)
	}
	defer sqlDB.Close()

	a := &app{
		client:   backend.New(*backendURL, cfg.BackendTimeout),
		holder:   session.NewHolder(db.NewSQLiteStore(sqlDB), cfg.SessionTTL),
		sid:      localSession,
		now:      cfg.Now,
		out:      os.Stdout,
		password: promptPassword(os.Stdin, os.Stderr),
	}

	err = a.run(ctx, flag.Arg(0), flag.Args()[1:])
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		flag.Usage()
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// promptPassword reads without echo from a terminal, else one line from in.
func promptPassword(in *os.File, prompt io.Writer) func(string) (string, error) {
	lines := bufio.NewReader(in)
	return func(label string) (string, error) {
		fmt.Fprint(prompt, label)
		fd := int(in.Fd())
		if term.IsTerminal(fd) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(prompt)
			return string(b), err
		}
		line, err := lines.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
