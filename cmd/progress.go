package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/minefetch/minefetch/internals/progress"
)

// maybeSpinner is a spinner that can also just log text, for dumb
// terminals and CI logs
type maybeSpinner struct {
	Spin    bool
	Spinner *spinner.Spinner
}

func newMaybeSpinner(spin bool) *maybeSpinner {
	s := &maybeSpinner{
		Spin:    spin,
		Spinner: spinner.New(spinner.CharSets[9], 300*time.Millisecond),
	}
	s.Spinner.Prefix = " "
	return s
}

func (m *maybeSpinner) Start() {
	if m.Spin {
		m.Spinner.Start()
	}
}

func (m *maybeSpinner) Stop() {
	if m.Spin {
		m.Spinner.Stop()
	}
}

func (m *maybeSpinner) Update(t string) {
	m.Spinner.Suffix = " " + t
	if !m.Spin {
		fmt.Println(t)
	}
}

// watchProgress renders labelled progress channels onto one spinner
// until all of them close
func watchProgress(s *maybeSpinner, channels map[string]<-chan progress.Report) *sync.WaitGroup {
	wg := &sync.WaitGroup{}
	for label, ch := range channels {
		label, ch := label, ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			for report := range ch {
				if report.Total == 0 {
					continue
				}
				s.Update(fmt.Sprintf("%s %d/%d", label, report.Done, report.Total))
			}
		}()
	}
	return wg
}
