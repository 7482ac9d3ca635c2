// Package notify is the transient user-notification channel. The shop
// surfaces success and failure the same way, as short human-readable
// messages, so the interface is deliberately narrow.
package notify

import "go.uber.org/zap"

type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Log routes notifications to the service log.
type Log struct {
	L *zap.Logger
}

func NewLog(l *zap.Logger) *Log {
	if l == nil {
		l = zap.NewNop()
	}
	return &Log{L: l}
}

func (n *Log) Success(msg string) { n.L.Info("notify", zap.String("level", "success"), zap.String("msg", msg)) }
func (n *Log) Info(msg string)    { n.L.Info("notify", zap.String("level", "info"), zap.String("msg", msg)) }
func (n *Log) Error(msg string)   { n.L.Warn("notify", zap.String("level", "error"), zap.String("msg", msg)) }

// Nop drops everything.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Info(string)    {}
func (Nop) Error(string)   {}
