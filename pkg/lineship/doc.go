// Package lineship provides an embeddable line-file replayer.
//
// Lineship reads a text file line by line, groups the lines into batches of
// a fixed size and sends each batch as one newline-delimited frame to a TCP
// or UDP endpoint. It can be used as a standalone CLI application or
// embedded as a library in other Go programs.
//
// # Basic Usage
//
//	cfg := lineship.DefaultConfig()
//	cfg.FilePath = "/var/log/events.log"
//	cfg.Host = "collector.local"
//	cfg.Port = "9000"
//	cfg.Transport = lineship.TCP
//
//	l, err := lineship.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stats, err := l.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.RecordsSent)
//
// # Event Handling
//
// To observe each send, implement [EventHandler] (embed [BaseEventHandler]
// for no-op defaults) and pass it via [WithEventHandler]. Handlers run
// synchronously on the replay goroutine.
//
// # Delivery
//
// Batches are sent strictly in file order, one at a time. UDP gives no
// delivery guarantee and a batch larger than one datagram fails the run.
// There are no retries: the first error ends the run and the returned
// [Stats] hold what was delivered before it.
package lineship
