package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"htmlit/internal/driver"
	"htmlit/internal/source"
	"htmlit/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckWithUI запускает проверку в фоне и рисует прогресс через Bubble Tea.
func runCheckWithUI(title string, files []string, run func(driver.ProgressSink) (*source.FileSet, []driver.CheckResult, error)) (*source.FileSet, []driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fileSet, results, err := run(driver.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
