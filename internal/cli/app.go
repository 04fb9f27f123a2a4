package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/will1001/flashcard-japan/internal/domain/quiz"
)

const maxAttempts = 3

// quitAnswer ends the quiz early.
const quitAnswer = "Q"

// Run plays one quiz on the terminal until the questions run out, the user
// quits, or ctx is cancelled. Cancellation also interrupts a pending read.
func Run(ctx context.Context, in io.Reader, out io.Writer, engine *quiz.Engine, cfg quiz.Config) error {
	question, err := engine.Start(cfg)
	if err != nil {
		return err
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines := readLines(readCtx, in)
	total := len(engine.Questions())

	for number := 1; question != nil; number++ {
		if err := ctx.Err(); err != nil {
			engine.EndSession()
			return err
		}

		printQuestion(out, number, total, question)

		chosenIndex, action := getAnswer(ctx, lines, out, len(question.Options))
		if action == actionCancel {
			engine.EndSession()
			return ctx.Err()
		}
		fmt.Fprintln(out)
		if action == actionQuit {
			engine.EndSession()
			fmt.Fprintln(out, "Quiz ended early.")
			break
		}

		correctText := question.Answer()
		if action == actionSkip {
			engine.CheckAnswer(-1)
			fmt.Fprintf(out, "Skipping. Correct answer was %s\n\n", correctText)
		} else if engine.CheckAnswer(chosenIndex) {
			fmt.Fprintln(out, "Correct!")
			fmt.Fprintln(out)
		} else {
			fmt.Fprintf(out, "Wrong. Correct answer was %s\n\n", correctText)
		}

		question = engine.NextQuestion()
	}

	printResults(out, engine.Results())
	return nil
}

type inputAction int

const (
	actionAnswer inputAction = iota
	actionSkip
	actionQuit
	actionCancel
)

type inputLine struct {
	text string
	err  error
}

// readLines feeds lines from in until it fails or ctx is done. The channel
// is closed after the line carrying the read error.
func readLines(ctx context.Context, in io.Reader) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			text, err := reader.ReadString('\n')
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

func printQuestion(out io.Writer, number, total int, question *quiz.Question) {
	fmt.Fprintln(out)
	switch question.Mode {
	case quiz.ModeReading:
		fmt.Fprintf(out, "Q%d/%d: How do you read %s? (%s)\n\n", number, total, question.Card.Term, question.Card.Translation())
	default:
		fmt.Fprintf(out, "Q%d/%d: What does %s (%s) mean?\n\n", number, total, question.Card.Term, question.Card.Reading)
	}
	for idx, option := range question.Options {
		letter := string(rune('A' + idx))
		if question.OptionHints != nil && question.OptionHints[idx] != "" {
			fmt.Fprintf(out, "%s. %s (%s)\n", letter, option, question.OptionHints[idx])
			continue
		}
		fmt.Fprintf(out, "%s. %s\n", letter, option)
	}
	fmt.Fprintln(out)
}

func getAnswer(ctx context.Context, lines <-chan inputLine, out io.Writer, optionCount int) (int, inputAction) {
	if optionCount < 1 {
		return -1, actionSkip
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var line inputLine
		select {
		case <-ctx.Done():
			return -1, actionCancel
		case l, ok := <-lines:
			if !ok {
				return -1, actionQuit
			}
			line = l
		}

		userAnswer := strings.ToUpper(strings.TrimSpace(line.text))
		if userAnswer == quitAnswer {
			return -1, actionQuit
		}
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), actionAnswer
			}
		}
		if line.err != nil {
			return -1, actionQuit
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c, or Q to quit.\n", maxLetter)
		}
	}

	return -1, actionSkip
}

func printResults(out io.Writer, res quiz.Results) {
	fmt.Fprintf(out, "\nFinal score: %d/%d (%d%%)\n", res.Correct, res.Total, res.Percentage)
	for _, h := range res.History {
		if h.Correct {
			continue
		}
		fmt.Fprintf(out, "  review: %s = %s\n", h.Question.Card.Term, h.Question.Answer())
	}
}
