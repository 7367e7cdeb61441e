package roster

import (
	"context"
	"fmt"
	"strings"
)

// Logger is the minimal logging surface the package needs. Messages take
// a human readable string followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Authenticator verifies credentials and mints token pairs
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*Member, TokenPair, error)
}

// WhitelistGate decides whether an email may complete registration
type WhitelistGate interface {
	IsAllowed(email string) bool
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println("[ERR] ROSTER " + withFields(msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println("[WRN] ROSTER " + withFields(msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println("[INF] ROSTER " + withFields(msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println("[DBG] ROSTER " + withFields(msg, args))
}

// withFields renders alternating key/value args as key=value pairs, the
// same call convention the zap sugared adapter consumes.
func withFields(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)

	for i := 0; i < len(args); i += 2 {
		b.WriteString(" ")
		b.WriteString(fmt.Sprint(args[i]))
		b.WriteString("=")
		if i+1 < len(args) {
			b.WriteString(fmt.Sprint(args[i+1]))
		}
	}

	return b.String()
}
