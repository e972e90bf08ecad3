package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// lineSpinner uses the same frames as the interactive flow so a catalog load
// looks alike in both modes.
var lineSpinner = spinner.Dot

// StartSpinner animates message on the current line of w until the returned
// stop func is called. stop clears the line and may be called more than once.
func StartSpinner(w io.Writer, message string) (stop func()) {
	quit := make(chan struct{})
	finished := make(chan struct{})
	label := Dim(message)

	go func() {
		defer close(finished)
		t := time.NewTicker(lineSpinner.FPS)
		defer t.Stop()
		for frame := 0; ; frame = (frame + 1) % len(lineSpinner.Frames) {
			fmt.Fprintf(w, "\r  %s %s", StylePurple.Render(lineSpinner.Frames[frame]), label)
			select {
			case <-quit:
				fmt.Fprint(w, "\r\033[K")
				return
			case <-t.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(quit) })
		<-finished
	}
}
