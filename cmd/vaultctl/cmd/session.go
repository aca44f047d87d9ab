// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

var (
	errNoUser       = errors.New("no username: pass --user or set " + envUser)
	errMissingInput = errors.New("missing input")
)

// lineReader hands out secrets one line of input at a time.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// secret returns the value of the env variable, or the next input line when
// the variable is empty.
func (l *lineReader) secret(env, what string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}

	line, err := l.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", what, err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%w: %s (set %s or pass it on stdin)", errMissingInput, what, env)
	}

	return line, nil
}

type sessionFunc func(ctx context.Context, vault service.ClientVaultService, master string) error

// withSession logs in, runs fn and logs out whatever fn returns.
func (a *cliApp) withSession(cmd *cobra.Command, in *lineReader, fn sessionFunc) error {
	if a.username == "" {
		return errNoUser
	}

	master, err := in.secret(envPassword, "master password")
	if err != nil {
		return err
	}

	vault, err := a.open(a.configPath)
	if err != nil {
		return err
	}
	defer vault.Logout()

	ctx := cmd.Context()
	result, err := vault.Login(ctx, a.username, master)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	printLoginWarnings(cmd.ErrOrStderr(), result)

	return fn(ctx, vault, master)
}

func printLoginWarnings(w io.Writer, result service.LoginResult) {
	if result.MigratedCount > 0 {
		fmt.Fprintf(w, "warning: %d legacy item(s) were encrypted with your key\n", result.MigratedCount)
	}
	if n := len(result.PendingMigration); n > 0 {
		fmt.Fprintf(w, "warning: %d legacy item(s) are still stored unencrypted\n", n)
	}
	for _, c := range result.Corrupt {
		fmt.Fprintf(w, "warning: item %s could not be decrypted (%s)\n", c.ID, strings.Join(c.Fields, ", "))
	}
}
