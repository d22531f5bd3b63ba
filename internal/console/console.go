// Package console is the interactive text front end of the quiz app.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/starquake/quizapp/internal/game"
	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/quiz"
	"github.com/starquake/quizapp/internal/session"
)

// Menu entries, in the order they are shown.
const (
	MenuCreate = "1"
	MenuPlay   = "2"
	MenuDelete = "3"
	MenuList   = "4"
	MenuExit   = "5"
)

// Console runs the menu loop over a reader and a writer.
type Console struct {
	ctrl   *session.Controller
	prompt *prompter
	out    io.Writer
	logger *logging.Logger
	theme  theme
}

// New creates a Console reading answers from in and writing to out.
func New(ctrl *session.Controller, in io.Reader, out io.Writer, logger *logging.Logger, noColor bool) *Console {
	return &Console{
		ctrl:   ctrl,
		prompt: newPrompter(in, out),
		out:    out,
		logger: logger,
		theme:  themeFor(out, noColor),
	}
}

// Run shows the menu until the user exits, the input ends or ctx is canceled.
// Only input failures are returned.
func (c *Console) Run(ctx context.Context) error {
	c.println(c.theme.title("Quiz App"))

	for {
		c.println("")
		c.println(MenuCreate + ") Create Quiz")
		c.println(MenuPlay + ") Play Quiz")
		c.println(MenuDelete + ") Delete Quiz")
		c.println(MenuList + ") List Quizzes")
		c.println(MenuExit + ") Exit")

		choice, err := c.prompt.ask(ctx, "Choose an option")
		if err != nil {
			return c.stop(ctx, err)
		}

		switch choice {
		case MenuCreate:
			err = c.Create(ctx)
		case MenuPlay:
			err = c.Play(ctx)
		case MenuDelete:
			err = c.Delete(ctx)
		case MenuList:
			c.List()
		case MenuExit:
			c.println("Goodbye!")

			return nil
		default:
			c.println(c.theme.warn("Please choose an option between 1 and 5."))
		}
		if err != nil {
			return c.stop(ctx, err)
		}
	}
}

// stop turns the end of input or a canceled context into a clean exit.
func (c *Console) stop(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		c.logger.Debug(ctx, "input closed")

		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.logger.Debug(ctx, "interrupted")

		return nil
	default:
		return err
	}
}

// Create asks for a new quiz and stores it. Any invalid answer abandons the quiz.
func (c *Console) Create(ctx context.Context) error {
	var req session.CreateRequest
	var err error

	if req.Name, err = c.prompt.ask(ctx, "Enter the name of the quiz"); err != nil {
		return err
	}
	if _, err = session.ValidateName(req.Name); err != nil {
		c.reportError(ctx, err)

		return nil
	}

	if req.Count, err = c.prompt.ask(ctx, "Enter the number of questions"); err != nil {
		return err
	}
	count, err := session.ParseQuestionCount(req.Count)
	if err != nil {
		c.reportError(ctx, err)

		return nil
	}

	for i := range count {
		in, ok, askErr := c.askQuestion(ctx, i+1)
		if askErr != nil {
			return askErr
		}
		if !ok {
			return nil
		}
		req.Questions = append(req.Questions, in)
	}

	name, err := c.ctrl.CreateQuiz(ctx, req)
	switch {
	case err == nil:
		c.println(c.theme.success(fmt.Sprintf("Quiz %q created successfully!", name)))
	case name != "":
		c.println(c.theme.warn(fmt.Sprintf("Quiz %q was created but could not be saved: %v", name, err)))
	default:
		c.reportError(ctx, err)
	}

	return nil
}

// askQuestion asks for question n. It reports false when an answer was invalid and has been reported.
func (c *Console) askQuestion(ctx context.Context, n int) (session.QuestionInput, bool, error) {
	var in session.QuestionInput
	var err error

	if in.Text, err = c.prompt.ask(ctx, fmt.Sprintf("Enter question %d", n)); err != nil {
		return in, false, err
	}
	if _, err = session.ValidateQuestionText(in.Text); err != nil {
		c.reportError(ctx, err)

		return in, false, nil
	}

	label := fmt.Sprintf("Enter the number of options for question %d", n)
	if in.OptionCount, err = c.prompt.ask(ctx, label); err != nil {
		return in, false, err
	}
	optionCount, err := session.ParseOptionCount(in.OptionCount)
	if err != nil {
		c.reportError(ctx, err)

		return in, false, nil
	}

	for j := range optionCount {
		option, askErr := c.prompt.ask(ctx, fmt.Sprintf("Option %d", j+1))
		if askErr != nil {
			return in, false, askErr
		}
		in.Options = append(in.Options, option)
	}

	label = fmt.Sprintf("Which option is correct? (1-%d)", optionCount)
	if in.Correct, err = c.prompt.ask(ctx, label); err != nil {
		return in, false, err
	}
	if _, err = session.ParseCorrectOption(in.Correct, optionCount); err != nil {
		c.reportError(ctx, err)

		return in, false, nil
	}

	return in, true, nil
}

// Play lets the user pick a quiz and plays it. Only input errors are returned.
func (c *Console) Play(ctx context.Context) error {
	name, ok, err := c.selectQuiz(ctx, "play")
	if err != nil || !ok {
		return err
	}

	return inputErrorOnly(c.PlayQuiz(ctx, name))
}

// PlayQuiz plays the quiz stored under name and prints the result.
// Errors other than input errors are also shown to the user.
func (c *Console) PlayQuiz(ctx context.Context, name string) error {
	res, err := c.ctrl.PlayQuiz(ctx, name, &consolePlayer{c: c})
	if err != nil {
		if !isInputError(err) {
			c.reportError(ctx, err)
		}

		return err
	}

	c.println(c.theme.box(res.Summary()))

	return nil
}

// Delete lets the user pick a quiz and deletes it. Only input errors are returned.
func (c *Console) Delete(ctx context.Context) error {
	name, ok, err := c.selectQuiz(ctx, "delete")
	if err != nil || !ok {
		return err
	}

	return inputErrorOnly(c.DeleteQuiz(ctx, name))
}

// DeleteQuiz deletes the quiz stored under name and tells the user how it went.
func (c *Console) DeleteQuiz(ctx context.Context, name string) error {
	if err := c.ctrl.DeleteQuiz(ctx, name); err != nil {
		c.reportError(ctx, err)

		return err
	}
	c.println(c.theme.success("Quiz deleted successfully!"))

	return nil
}

// inputErrorOnly drops errors that have already been shown to the user.
func inputErrorOnly(err error) error {
	if err != nil && isInputError(err) {
		return err
	}

	return nil
}

// List prints every quiz with its number of questions.
func (c *Console) List() {
	summaries := c.ctrl.ListQuizzes()
	if len(summaries) == 0 {
		c.println(Message(session.ErrNoQuizzesAvailable))

		return
	}
	c.printQuizzes(summaries)
}

func (c *Console) printQuizzes(summaries []session.Summary) {
	for i, s := range summaries {
		line := fmt.Sprintf("%d) %s", i+1, s.Name)
		detail := fmt.Sprintf(" (%d questions)", s.Questions)
		if s.Questions == 1 {
			detail = " (1 question)"
		}
		if s.Default {
			detail += " [default]"
		}
		c.println(line + c.theme.dim(detail))
	}
}

// selectQuiz shows the quizzes and asks for one by number or by name. A blank answer cancels.
func (c *Console) selectQuiz(ctx context.Context, verb string) (string, bool, error) {
	summaries := c.ctrl.ListQuizzes()
	if len(summaries) == 0 {
		c.println(c.theme.warn(fmt.Sprintf("No quizzes available to %s!", verb)))

		return "", false, nil
	}
	c.printQuizzes(summaries)

	answer, err := c.prompt.ask(ctx, fmt.Sprintf("Select a quiz to %s (number or name, blank to cancel)", verb))
	if err != nil {
		return "", false, err
	}
	if answer == "" {
		return "", false, nil
	}

	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(summaries) {
		return summaries[n-1].Name, true, nil
	}
	for _, s := range summaries {
		if s.Name == answer {
			return s.Name, true, nil
		}
	}
	c.println(c.theme.warn(fmt.Sprintf("No quiz named %q.", answer)))

	return "", false, nil
}

func (c *Console) reportError(ctx context.Context, err error) {
	c.logger.Debug(ctx, "request rejected", logging.ErrAttr(err))
	c.println(c.theme.failure(Message(err)))
}

func (c *Console) println(text string) {
	fmt.Fprintln(c.out, text)
}

// consolePlayer asks the questions of an attempt at the prompt.
type consolePlayer struct {
	c *Console
}

// Answer shows the turn and reads the chosen option. A blank answer is no answer.
func (p *consolePlayer) Answer(ctx context.Context, turn game.Turn) (int, error) {
	c := p.c
	c.println("")
	c.println(c.theme.question(fmt.Sprintf("Question %d/%d: %s", turn.Number, turn.Total, turn.Question.Text)))
	for i, option := range turn.Question.Options {
		c.println(fmt.Sprintf("  %d) %s", i+1, option))
	}

	n := len(turn.Question.Options)
	for {
		answer, err := c.prompt.ask(ctx, "Your answer (blank to skip)")
		if err != nil {
			return quiz.NoAnswer, err
		}
		if answer == "" {
			return quiz.NoAnswer, nil
		}
		choice, convErr := strconv.Atoi(answer)
		if convErr == nil && choice >= 1 && choice <= n {
			return choice - 1, nil
		}
		c.println(c.theme.warn(fmt.Sprintf("Please enter a number between 1 and %d, or leave it blank to skip.", n)))
	}
}

// NoAnswer tells the user the question was skipped.
func (p *consolePlayer) NoAnswer(context.Context, game.Turn) {
	p.c.println(p.c.theme.warn("No answer selected for this question."))
}
