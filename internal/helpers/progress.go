package helpers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

type ProgressBar struct {
	Set   func(int)
	Add   func(int)
	Close func()
}

func termWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if !IsNil(err) {
		return 80
	}
	return MaxInt(80, MinInt(120, width))
}

func unitForDuration(d time.Duration) time.Duration {
	if d < time.Microsecond {
		return time.Nanosecond
	}
	if d < time.Millisecond {
		return time.Microsecond
	}
	if d < time.Second {
		return time.Millisecond
	}
	if d < time.Minute {
		return time.Second
	}
	return time.Minute
}

// RateString formats a count over a duration, eg "1,234,567 nodes in 1.2s @ 1,028,805/s".
func RateString(count int64, label string, elapsed time.Duration) string {
	perSecond := int64(0)
	if elapsed > 0 {
		perSecond = int64(float64(count) / elapsed.Seconds())
	}
	return fmt.Sprintf("%s %s in %v @ %s/s",
		humanize.Comma(count), label, elapsed.Round(unitForDuration(elapsed)), humanize.Comma(perSecond))
}

func CreateProgressBar(total int, label string) ProgressBar {
	return CreateProgressBarTo(os.Stderr, total, label)
}

func CreateProgressBarTo(w io.Writer, total int, label string) ProgressBar {
	startTime := time.Now()
	value := 0

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(termWidth()/2),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(200*time.Millisecond),
	)

	return ProgressBar{
		func(i int) {
			value = i
			_ = bar.Set(i)
		},
		func(i int) {
			value += i
			_ = bar.Add(i)
		},
		func() {
			_ = bar.Finish()
			fmt.Fprintln(w)
			fmt.Fprintln(w, label, RateString(int64(value), "done", time.Since(startTime)))
		},
	}
}
