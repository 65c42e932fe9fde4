package email

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelay accepts one session and records the DATA payload
func fakeRelay(t *testing.T, rejectRcpt bool) (host string, port int, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }

		reply("220 fake ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 fake")
			case strings.HasPrefix(cmd, "MAIL"):
				reply("250 OK")
			case strings.HasPrefix(cmd, "RCPT"):
				if rejectRcpt {
					reply("550 no such user")
					continue
				}
				reply("250 OK")
			case cmd == "DATA":
				reply("354 go ahead")
				var b strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					b.WriteString(l)
				}
				out <- b.String()
				reply("250 queued")
			case cmd == "QUIT":
				reply("221 bye")
				return
			default:
				reply("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, out
}

func TestSMTPSender_Send(t *testing.T) {
	host, port, data := fakeRelay(t, false)
	s := NewSMTPSender(config.EmailConfig{
		Enabled: true, Host: host, Port: port, From: "no-reply@fintrack.local", Timeout: 5 * time.Second,
	}, nil)

	err := s.Send(context.Background(), "ana@example.com", "Certificate due", "Repay by Friday.\nThanks")
	require.NoError(t, err)

	select {
	case msg := <-data:
		assert.Contains(t, msg, "To: ana@example.com\r\n")
		assert.Contains(t, msg, "Subject: Certificate due\r\n")
		assert.Contains(t, msg, "Repay by Friday.\r\nThanks")
	case <-time.After(5 * time.Second):
		t.Fatal("relay received no message")
	}
}

func TestSMTPSender_Send_RecipientRejected(t *testing.T) {
	host, port, _ := fakeRelay(t, true)
	s := NewSMTPSender(config.EmailConfig{Host: host, Port: port, From: "a@b.c", Timeout: 5 * time.Second}, nil)

	err := s.Send(context.Background(), "ghost@example.com", "s", "b")
	assert.ErrorContains(t, err, "RCPT TO rejected")
}

func TestSMTPSender_Send_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := NewSMTPSender(config.EmailConfig{Host: "127.0.0.1", Port: port, Timeout: time.Second}, nil)
	err = s.Send(context.Background(), "a@b.c", "s", "b")
	assert.ErrorContains(t, err, "failed to connect")
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC)

	msg, err := BuildMessage("from@x.io", "to@x.io", "Résumé", "line1\r\nline2\nline3", date)
	require.NoError(t, err)

	s := string(msg)
	assert.Contains(t, s, "Subject: =?utf-8?q?R=C3=A9sum=C3=A9?=\r\n")
	assert.Contains(t, s, "Date: Thu, 14 Mar 2024 09:30:00 +0000\r\n")
	assert.Contains(t, s, "\r\n\r\nline1\r\nline2\r\nline3\r\n")
}

func TestBuildMessage_RejectsHeaderInjection(t *testing.T) {
	_, err := BuildMessage("a@b.c", "to@x.io\r\nBcc: all@x.io", "s", "b", time.Now())
	assert.ErrorIs(t, err, ErrHeaderInjection)
}

func TestNewSender(t *testing.T) {
	assert.True(t, NewSender(config.EmailConfig{Enabled: false}, nil).DryRun())
	assert.False(t, NewSender(config.EmailConfig{Enabled: true, Host: "smtp.example.com", Port: 587}, nil).DryRun())
	assert.NoError(t, NewLogSender(nil).Send(context.Background(), "a@b.c", "s", "b"))
}
