package lineship_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/bft-labs/lineship/pkg/lineship"
)

// ExampleLineship_Run replays a three-line file to a local TCP listener.
func ExampleLineship_Run() {
	dir, _ := os.MkdirTemp("", "lineship")
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "events.log")
	_ = os.WriteFile(path, []byte("a\nb\nc\n"), 0o644)

	ln, _ := net.Listen("tcp", "127.0.0.1:0")
	defer ln.Close()
	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			received <- nil
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()
	_, port, _ := net.SplitHostPort(ln.Addr().String())

	cfg := lineship.DefaultConfig()
	cfg.FilePath = path
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.Transport = lineship.TCP
	cfg.BatchSize = 2

	l, err := lineship.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	stats, err := l.Run(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("sent %d records in %d batches\n", stats.RecordsSent, stats.BatchesSent)
	fmt.Printf("%q\n", <-received)
	// Output:
	// sent 3 records in 2 batches
	// "a\nb\nc\n"
}
