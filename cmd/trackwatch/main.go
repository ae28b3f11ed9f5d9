// Command trackwatch follows one order through the tracking endpoint and
// prints every status or driver position change.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"food-delivery-app/config"
	"food-delivery-app/logger"
	"food-delivery-app/poller"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

type tracking struct {
	Order struct {
		OrderNumber string `json:"orderNumber"`
		Status      string `json:"status"`
	} `json:"order"`
	Restaurant *struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"restaurant"`
	DriverLocation *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"driverLocation"`
}

func main() {
	cfg := config.Get()
	base := flag.String("base", "http://localhost:"+cfg.Port, "API base URL")
	interval := flag.Duration("interval", cfg.PollInterval, "poll interval")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: trackwatch [flags] ORDER_NUMBER\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	endpoint := strings.TrimRight(*base, "/") + "/api/orders/track/" + url.PathEscape(flag.Arg(0))

	changes := &changeLog{}
	p := poller.New(endpoint,
		poller.WithInterval(*interval),
		poller.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		poller.WithOnUpdate(func(s poller.State) {
			if s.Error != "" {
				logger.Error.WithField("order", flag.Arg(0)).Warn(s.Error)
				return
			}
			line, changed, err := changes.next(s.Data)
			if err != nil {
				logger.Error.WithError(err).Warn("unexpected tracking payload")
				return
			}
			if changed {
				logger.Info.WithFields(logrus.Fields{"order": flag.Arg(0)}).Info(line)
			}
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	p.Start(ctx)
	<-ctx.Done()
	p.Stop()
}

// changeLog remembers the last line so only changes are printed.
type changeLog struct {
	last string
}

// next decodes one tracking payload and reports whether its line differs from the previous one.
func (c *changeLog) next(data []byte) (string, bool, error) {
	var t tracking
	if err := json.Unmarshal(data, &t); err != nil {
		return "", false, err
	}
	line := describe(t)
	if line == c.last {
		return line, false, nil
	}
	c.last = line
	return line, true, nil
}

func describe(t tracking) string {
	var b strings.Builder
	b.WriteString("status=" + t.Order.Status)
	if t.Restaurant != nil {
		b.WriteString(" restaurant=" + t.Restaurant.Name)
	}
	if t.DriverLocation != nil {
		fmt.Fprintf(&b, " driver=%.5f,%.5f", t.DriverLocation.Latitude, t.DriverLocation.Longitude)
	}
	return b.String()
}
